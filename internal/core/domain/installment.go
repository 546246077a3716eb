package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus is the one-way state of a weekly obligation.
// PENDING is initial, PAID is terminal; an installment never reopens.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "PENDING"
	InstallmentPaid    InstallmentStatus = "PAID"
)

// Installment is one scheduled weekly obligation of a loan. AmountDue is the
// fixed capital+interest due for the period; penalties accrue on top of it.
// The paid columns are cumulative and only ever grow.
type Installment struct {
	InstallmentID      string            `json:"installmentID"`
	LoanID             string            `json:"loanID"`
	WeekNumber         int               `json:"weekNumber"` // unique per loan, ascending, immutable
	DueDate            time.Time         `json:"dueDate"`
	AmountDue          decimal.Decimal   `json:"amountDue"`
	CapitalPortion     decimal.Decimal   `json:"capitalPortion"`
	InterestPortion    decimal.Decimal   `json:"interestPortion"`
	PenaltyApplied     decimal.Decimal   `json:"penaltyApplied"`
	LastPenaltyApplied *time.Time        `json:"lastPenaltyApplied,omitempty"`
	CapitalPaid        decimal.Decimal   `json:"capitalPaid"`
	InterestPaid       decimal.Decimal   `json:"interestPaid"`
	PenaltyPaid        decimal.Decimal   `json:"penaltyPaid"`
	Status             InstallmentStatus `json:"status"`
	AuditFields
}

// TotalDue is the full amount owed for the period including accrued penalties.
func (i Installment) TotalDue() decimal.Decimal {
	return i.AmountDue.Add(i.PenaltyApplied)
}

// TotalPaid is the cumulative cash collected against this installment.
func (i Installment) TotalPaid() decimal.Decimal {
	return i.CapitalPaid.Add(i.InterestPaid).Add(i.PenaltyPaid)
}

// OutstandingPenalty is the accrued penalty not yet collected.
func (i Installment) OutstandingPenalty() decimal.Decimal {
	return i.PenaltyApplied.Sub(i.PenaltyPaid)
}

// OutstandingInterest is the interest portion not yet collected.
func (i Installment) OutstandingInterest() decimal.Decimal {
	return i.InterestPortion.Sub(i.InterestPaid)
}

// OutstandingCapital is the capital portion not yet collected.
func (i Installment) OutstandingCapital() decimal.Decimal {
	return i.CapitalPortion.Sub(i.CapitalPaid)
}

// IsSettled reports whether cumulative collections cover the total due.
func (i Installment) IsSettled() bool {
	return i.TotalPaid().GreaterThanOrEqual(i.TotalDue())
}

// lateCutoffHour is the local hour from which an installment due today counts
// as overdue.
const lateCutoffHour = 14

// IsOverdueAt reports whether the installment is late at asOf. Due dates in a
// past calendar day are late; a due date today is late from the cutoff hour.
func (i Installment) IsOverdueAt(asOf time.Time) bool {
	dueY, dueM, dueD := i.DueDate.Date()
	asY, asM, asD := asOf.Date()
	dueDay := time.Date(dueY, dueM, dueD, 0, 0, 0, 0, asOf.Location())
	asDay := time.Date(asY, asM, asD, 0, 0, 0, 0, asOf.Location())

	if asDay.After(dueDay) {
		return true
	}
	if asDay.Equal(dueDay) {
		return asOf.Hour() >= lateCutoffHour
	}
	return false
}
