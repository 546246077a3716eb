package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestadero/lending-backend/internal/apperrors"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/dto"
	"github.com/prestadero/lending-backend/internal/middleware"
)

// loanHandler handles HTTP requests related to loans and their schedules.
type loanHandler struct {
	loanService     portssvc.LoanSvcFacade
	scheduleService portssvc.ScheduleSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(ls portssvc.LoanSvcFacade, ss portssvc.ScheduleSvcFacade) *loanHandler {
	return &loanHandler{
		loanService:     ls,
		scheduleService: ss,
	}
}

// registerLoanRoutes registers loan lifecycle, schedule, payment and penalty routes.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, scheduleService portssvc.ScheduleSvcFacade, paymentService portssvc.PaymentSvcFacade, penaltyService portssvc.PenaltySvcFacade) {
	h := newLoanHandler(loanService, scheduleService)
	ph := newPaymentHandler(paymentService)
	nh := newPenaltyHandler(penaltyService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("/:loanID", h.getLoan)
		loans.POST("/:loanID/activate", h.activateLoan)
		loans.GET("/:loanID/schedule", h.getSchedule)
		loans.POST("/:loanID/payments", ph.applyPayment)
		loans.GET("/:loanID/payments", ph.listPayments)
		loans.POST("/:loanID/penalties", nh.accruePenalties)
	}
}

func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating loan", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create loan", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create loan"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else {
			logger.Error("Failed to get loan", slog.String("loan_id", loanID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) activateLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	loan, err := h.loanService.ActivateLoan(c.Request.Context(), loanID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to activate loan", slog.String("loan_id", loanID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate loan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	asOf := time.Now()
	installments, err := h.scheduleService.GetScheduleByLoanID(c.Request.Context(), loanID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else {
			logger.Error("Failed to get schedule", slog.String("loan_id", loanID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve schedule"})
		}
		return
	}

	resp := dto.ScheduleResponse{
		LoanID:       loanID,
		Installments: make([]dto.InstallmentResponse, len(installments)),
	}
	for i, inst := range installments {
		resp.Installments[i] = dto.ToInstallmentResponse(inst, asOf)
	}

	c.JSON(http.StatusOK, resp)
}
