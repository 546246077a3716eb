package dto

import (
	"time"

	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccruePenaltiesRequest is the body of the accrue-penalties operation.
// AsOf defaults to the current time when omitted.
type AccruePenaltiesRequest struct {
	AsOf *time.Time `json:"asOf,omitempty"`
}

// AccrualOutcomeResponse is one per-installment accrual result.
type AccrualOutcomeResponse struct {
	WeekNumber   int             `json:"weekNumber"`
	Status       string          `json:"status"`
	PenaltyDelta decimal.Decimal `json:"penaltyDelta"`
	NewTotal     decimal.Decimal `json:"newTotal"`
	Reason       string          `json:"reason,omitempty"`
}

// AccruePenaltiesResponse lists what the engine did per pending installment.
type AccruePenaltiesResponse struct {
	LoanID   string                   `json:"loanID"`
	Outcomes []AccrualOutcomeResponse `json:"outcomes"`
}

// ToAccrualOutcomeResponses converts domain outcomes to their API shape.
func ToAccrualOutcomeResponses(outcomes []domain.AccrualOutcome) []AccrualOutcomeResponse {
	out := make([]AccrualOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		out[i] = AccrualOutcomeResponse{
			WeekNumber:   o.WeekNumber,
			Status:       string(o.Status),
			PenaltyDelta: o.PenaltyDelta,
			NewTotal:     o.NewTotal,
			Reason:       o.Reason,
		}
	}
	return out
}
