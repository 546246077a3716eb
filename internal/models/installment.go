package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is the installments table row. week_number is unique per loan.
type Installment struct {
	InstallmentID      string          `db:"installment_id"`
	LoanID             string          `db:"loan_id"`
	WeekNumber         int             `db:"week_number"`
	DueDate            time.Time       `db:"due_date"`
	AmountDue          decimal.Decimal `db:"amount_due"`
	CapitalPortion     decimal.Decimal `db:"capital_portion"`
	InterestPortion    decimal.Decimal `db:"interest_portion"`
	PenaltyApplied     decimal.Decimal `db:"penalty_applied"`
	LastPenaltyApplied *time.Time      `db:"last_penalty_applied"`
	CapitalPaid        decimal.Decimal `db:"capital_paid"`
	InterestPaid       decimal.Decimal `db:"interest_paid"`
	PenaltyPaid        decimal.Decimal `db:"penalty_paid"`
	Status             string          `db:"status"`
	AuditFields
}
