package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row. Append-only.
type Payment struct {
	PaymentID       string          `db:"payment_id"`
	LoanID          string          `db:"loan_id"`
	Amount          decimal.Decimal `db:"amount"`
	Method          string          `db:"method"`
	InstallmentWeek int             `db:"installment_week"`
	PaymentDate     time.Time       `db:"payment_date"`
	StoreID         *string         `db:"store_id"`
	AuditFields
}
