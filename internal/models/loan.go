package models

import (
	"github.com/shopspring/decimal"
)

// LoanStatus mirrors domain.LoanStatus at the storage layer.
type LoanStatus string

// Loan is the loans table row.
type Loan struct {
	LoanID       string          `db:"loan_id"`
	CustomerName string          `db:"customer_name"`
	Principal    decimal.Decimal `db:"principal"`
	InterestRate decimal.Decimal `db:"interest_rate"`
	TermWeeks    int             `db:"term_weeks"`
	LoanType     string          `db:"loan_type"`
	Status       LoanStatus      `db:"status"`
	StoreID      *string         `db:"store_id"`
	AuditFields
}
