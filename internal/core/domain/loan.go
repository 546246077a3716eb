package domain

import (
	"github.com/shopspring/decimal"
)

// LoanStatus tracks a loan through its delivery and repayment lifecycle.
type LoanStatus string

const (
	LoanPending              LoanStatus = "PENDING"
	LoanPendingAdminApproval LoanStatus = "PENDING_ADMIN_APPROVAL"
	LoanApproved             LoanStatus = "APPROVED"
	LoanDelivered            LoanStatus = "DELIVERED"
	LoanActive               LoanStatus = "ACTIVE"
	LoanPaidOff              LoanStatus = "PAID_OFF"
	LoanDefaulted            LoanStatus = "DEFAULTED"
)

// LoanType distinguishes cash loans from product (merchandise) loans.
// Product loans only accept payments once the product has been delivered.
type LoanType string

const (
	LoanTypeCash     LoanType = "efectivo"
	LoanTypeProducto LoanType = "producto"
)

// Loan represents a consumer micro-loan. Its weekly obligations live in the
// installments table (1:N); the loan row carries the headline terms and status.
type Loan struct {
	LoanID       string          `json:"loanID"`
	CustomerName string          `json:"customerName"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interestRate"` // flat rate over the term, e.g. 0.40
	TermWeeks    int             `json:"termWeeks"`
	LoanType     LoanType        `json:"loanType"`
	Status       LoanStatus      `json:"status"`
	StoreID      *string         `json:"storeID,omitempty"`
	AuditFields
}

// AcceptsPayments reports whether the loan is in a state where cash can be
// applied to it. Pending loans never accept payments; product loans must have
// been delivered first, approval alone is not enough.
func (l Loan) AcceptsPayments() bool {
	switch l.Status {
	case LoanPending, LoanPendingAdminApproval:
		return false
	case LoanApproved:
		return l.LoanType != LoanTypeProducto
	default:
		return true
	}
}
