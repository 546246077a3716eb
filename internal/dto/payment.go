package dto

import (
	"time"

	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest is the body of the apply-payment operation.
// ApplyExtraTo controls the disposition of cash left over after the
// installments are settled: unset leaves it unapplied (reported back),
// "capital" posts it as an unattributed principal reduction.
type ApplyPaymentRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Method       string          `json:"method" binding:"required,oneof=efectivo transferencia tarjeta"`
	StoreID      *string         `json:"storeID,omitempty"`
	ApplyExtraTo *string         `json:"applyExtraTo,omitempty" binding:"omitempty,oneof=capital"`
	AsOf         *time.Time      `json:"asOf,omitempty"` // defaults to now; exposed for back-office corrections
}

// AllocationResponse is one per-installment split in the settlement summary.
type AllocationResponse struct {
	WeekNumber    int             `json:"weekNumber"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	PenaltyPaid   decimal.Decimal `json:"penaltyPaid"`
	InterestPaid  decimal.Decimal `json:"interestPaid"`
	CapitalPaid   decimal.Decimal `json:"capitalPaid"`
	Settled       bool            `json:"settled"`
}

// ApplyPaymentResponse is the settlement summary returned to the caller.
// Remaining is never silently dropped: cash that could not be applied is
// reported here.
type ApplyPaymentResponse struct {
	PaymentID            string               `json:"paymentID"`
	PaidInstallmentWeeks []int                `json:"paidInstallmentWeeks"`
	Remaining            decimal.Decimal      `json:"remaining"`
	ReceiptGenerated     bool                 `json:"receiptGenerated"`
	Allocations          []AllocationResponse `json:"allocations"`
}

// PaymentResponse is the API shape of one recorded payment.
type PaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	LoanID          string          `json:"loanID"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	InstallmentWeek int             `json:"installmentWeek"`
	PaymentDate     time.Time       `json:"paymentDate"`
	StoreID         *string         `json:"storeID,omitempty"`
}

// ToPaymentResponses converts domain payments to their API shape.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = PaymentResponse{
			PaymentID:       p.PaymentID,
			LoanID:          p.LoanID,
			Amount:          p.Amount,
			Method:          string(p.Method),
			InstallmentWeek: p.InstallmentWeek,
			PaymentDate:     p.PaymentDate,
			StoreID:         p.StoreID,
		}
	}
	return out
}

// ToAllocationResponses converts domain allocations to their API shape.
func ToAllocationResponses(allocs []domain.InstallmentAllocation) []AllocationResponse {
	out := make([]AllocationResponse, len(allocs))
	for i, a := range allocs {
		out[i] = AllocationResponse{
			WeekNumber:    a.WeekNumber,
			PaymentAmount: a.PaymentAmount,
			PenaltyPaid:   a.PenaltyPaid,
			InterestPaid:  a.InterestPaid,
			CapitalPaid:   a.CapitalPaid,
			Settled:       a.SettlesWeek,
		}
	}
	return out
}
