package domain

import "github.com/shopspring/decimal"

// AccrualStatus tells the caller what the penalty engine did for one
// installment on one accrual attempt.
type AccrualStatus string

const (
	AccrualApplied AccrualStatus = "APPLIED"
	AccrualSkipped AccrualStatus = "SKIPPED"
	AccrualFailed  AccrualStatus = "FAILED"
)

// AccrualOutcome is the typed result of a penalty accrual attempt. A Failed
// outcome carries the error for logging but is treated as zero accrual by the
// payment path; a penalty bug must never block debt collection.
type AccrualOutcome struct {
	Status       AccrualStatus   `json:"status"`
	WeekNumber   int             `json:"weekNumber"`
	PenaltyDelta decimal.Decimal `json:"penaltyDelta"`
	NewTotal     decimal.Decimal `json:"newTotal"`
	Reason       string          `json:"reason,omitempty"`
	Err          error           `json:"-"`
}

// Accrued reports whether this outcome added a penalty.
func (o AccrualOutcome) Accrued() bool {
	return o.Status == AccrualApplied && o.PenaltyDelta.IsPositive()
}
