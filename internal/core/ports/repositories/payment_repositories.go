package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// SumPaymentsForWeekInTx totals the cash previously recorded against one
	// installment week of a loan, within an open transaction.
	SumPaymentsForWeekInTx(ctx context.Context, tx pgx.Tx, loanID string, weekNumber int) (decimal.Decimal, error)

	// ListPaymentsByLoanID retrieves all payments recorded against a loan,
	// oldest first.
	ListPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePaymentInTx appends one payment row within an open transaction.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
