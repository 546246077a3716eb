package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReceipt is the event payload handed to the receipt/notification
// dispatcher after a payment has been committed. Consumers render the
// customer-facing receipt from it.
type PaymentReceipt struct {
	PaymentID     string          `json:"paymentID"`
	LoanID        string          `json:"loanID"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	PaidWeeks     []int           `json:"paidWeeks"`
	Remaining     decimal.Decimal `json:"remaining"`
	PaymentDate   time.Time       `json:"paymentDate"`
	AmountDisplay string          `json:"amountDisplay"`
}
