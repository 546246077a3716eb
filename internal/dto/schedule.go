package dto

import (
	"time"

	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InstallmentResponse is the API shape of one scheduled obligation, with the
// derived outstanding balance the collectors work from.
type InstallmentResponse struct {
	WeekNumber      int             `json:"weekNumber"`
	DueDate         time.Time       `json:"dueDate"`
	AmountDue       decimal.Decimal `json:"amountDue"`
	CapitalPortion  decimal.Decimal `json:"capitalPortion"`
	InterestPortion decimal.Decimal `json:"interestPortion"`
	PenaltyApplied  decimal.Decimal `json:"penaltyApplied"`
	CapitalPaid     decimal.Decimal `json:"capitalPaid"`
	InterestPaid    decimal.Decimal `json:"interestPaid"`
	PenaltyPaid     decimal.Decimal `json:"penaltyPaid"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	Overdue         bool            `json:"overdue"`
	Status          string          `json:"status"`
}

// ScheduleResponse is the full amortization view of a loan.
type ScheduleResponse struct {
	LoanID       string                `json:"loanID"`
	Installments []InstallmentResponse `json:"installments"`
}

// ToInstallmentResponse converts a domain Installment to its API shape.
// Overdue is evaluated against asOf.
func ToInstallmentResponse(inst domain.Installment, asOf time.Time) InstallmentResponse {
	outstanding := inst.TotalDue().Sub(inst.TotalPaid())
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	return InstallmentResponse{
		WeekNumber:      inst.WeekNumber,
		DueDate:         inst.DueDate,
		AmountDue:       inst.AmountDue,
		CapitalPortion:  inst.CapitalPortion,
		InterestPortion: inst.InterestPortion,
		PenaltyApplied:  inst.PenaltyApplied,
		CapitalPaid:     inst.CapitalPaid,
		InterestPaid:    inst.InterestPaid,
		PenaltyPaid:     inst.PenaltyPaid,
		Outstanding:     outstanding,
		Overdue:         inst.Status == domain.InstallmentPending && inst.IsOverdueAt(asOf),
		Status:          string(inst.Status),
	}
}
