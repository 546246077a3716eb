package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of accepted collection methods.
type PaymentMethod string

const (
	MethodEfectivo      PaymentMethod = "efectivo"
	MethodTransferencia PaymentMethod = "transferencia"
	MethodTarjeta       PaymentMethod = "tarjeta"
)

// IsValid reports whether m is one of the accepted methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodEfectivo, MethodTransferencia, MethodTarjeta:
		return true
	}
	return false
}

// Payment is an append-only record of cash received against a loan.
// InstallmentWeek is the week the payment was attributed to; Amount is
// immutable once written.
type Payment struct {
	PaymentID       string          `json:"paymentID"`
	LoanID          string          `json:"loanID"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	InstallmentWeek int             `json:"installmentWeek"`
	PaymentDate     time.Time       `json:"paymentDate"`
	StoreID         *string         `json:"storeID,omitempty"`
	AuditFields
}
