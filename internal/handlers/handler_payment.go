package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prestadero/lending-backend/internal/apperrors"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/dto"
	"github.com/prestadero/lending-backend/internal/middleware"
)

// paymentHandler handles the apply-payment operation.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

func (h *paymentHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyPayment", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	logger = logger.With(slog.String("loan_id", loanID), slog.String("actor_id", actorID))
	logger.Info("Received request to apply payment", slog.String("amount", req.Amount.String()), slog.String("method", req.Method))

	resp, err := h.paymentService.ApplyPayment(c.Request.Context(), loanID, req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrPrecondition):
			logger.Warn("Payment rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to apply payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply payment"})
		}
		return
	}

	logger.Info("Payment applied",
		slog.String("payment_id", resp.PaymentID),
		slog.Any("paid_weeks", resp.PaidInstallmentWeeks),
		slog.String("remaining", resp.Remaining.String()),
	)
	c.JSON(http.StatusOK, resp)
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	payments, err := h.paymentService.ListPaymentsByLoan(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		logger.Error("Failed to list payments", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": dto.ToPaymentResponses(payments)})
}
