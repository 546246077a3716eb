package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestadero/lending-backend/internal/apperrors"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/dto"
	"github.com/prestadero/lending-backend/internal/middleware"
)

// penaltyHandler handles the accrue-penalties operation.
type penaltyHandler struct {
	penaltyService portssvc.PenaltySvcFacade
}

// newPenaltyHandler creates a new penaltyHandler.
func newPenaltyHandler(ps portssvc.PenaltySvcFacade) *penaltyHandler {
	return &penaltyHandler{
		penaltyService: ps,
	}
}

func (h *penaltyHandler) accruePenalties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	// Body is optional; an empty body means accrue as of now.
	var req dto.AccruePenaltiesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for AccruePenalties", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	outcomes, err := h.penaltyService.AccrueLoanPenalties(c.Request.Context(), loanID, asOf, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		} else {
			logger.Error("Failed to accrue penalties", slog.String("loan_id", loanID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accrue penalties"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AccruePenaltiesResponse{
		LoanID:   loanID,
		Outcomes: dto.ToAccrualOutcomeResponses(outcomes),
	})
}
