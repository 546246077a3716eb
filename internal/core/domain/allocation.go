package domain

import "github.com/shopspring/decimal"

// InstallmentAllocation is the split of one payment slice across the
// penalty/interest/capital waterfall of a single installment.
// PaymentAmount always equals PenaltyPaid + InterestPaid + CapitalPaid.
type InstallmentAllocation struct {
	InstallmentID string          `json:"installmentID"`
	WeekNumber    int             `json:"weekNumber"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	PenaltyPaid   decimal.Decimal `json:"penaltyPaid"`
	InterestPaid  decimal.Decimal `json:"interestPaid"`
	CapitalPaid   decimal.Decimal `json:"capitalPaid"`
	SettlesWeek   bool            `json:"settlesWeek"` // installment fully settled after this slice
}

// AllocationResult is what the allocator hands to the ledger poster: the
// per-installment splits, the cash left unapplied, and the weeks fully paid.
type AllocationResult struct {
	PerInstallment []InstallmentAllocation `json:"perInstallment"`
	Remainder      decimal.Decimal         `json:"remainder"`
	PaidWeeks      []int                   `json:"paidWeeks"`
	Accruals       []AccrualOutcome        `json:"accruals"`
}
