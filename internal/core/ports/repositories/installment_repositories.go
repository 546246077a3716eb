package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InstallmentReader defines read operations for installment data
type InstallmentReader interface {
	// FindInstallmentsByLoanID retrieves every installment of a loan ordered by week number.
	FindInstallmentsByLoanID(ctx context.Context, loanID string) ([]domain.Installment, error)

	// FindPendingByLoanIDForUpdate retrieves the pending installments of a loan
	// ordered by week number, locking the rows for the duration of the
	// transaction. Must be called within a transaction.
	FindPendingByLoanIDForUpdate(ctx context.Context, tx pgx.Tx, loanID string) ([]domain.Installment, error)

	// CountPendingInTx counts the remaining pending installments of a loan
	// within an open transaction.
	CountPendingInTx(ctx context.Context, tx pgx.Tx, loanID string) (int, error)
}

// InstallmentWriter defines write operations for installment data
type InstallmentWriter interface {
	// SaveInstallments persists a freshly generated schedule as a batch.
	SaveInstallments(ctx context.Context, installments []domain.Installment) error

	// ApplyPenaltyInTx increments penalty_applied by delta and stamps
	// last_penalty_applied, within an open transaction.
	ApplyPenaltyInTx(ctx context.Context, tx pgx.Tx, installmentID string, delta decimal.Decimal, accruedOn time.Time, updatedBy string, updatedAt time.Time) error

	// ApplyCollectionInTx adds the collected components to the cumulative paid
	// columns and sets the recomputed status, within an open transaction.
	ApplyCollectionInTx(ctx context.Context, tx pgx.Tx, installmentID string, penalty, interest, capital decimal.Decimal, status domain.InstallmentStatus, updatedBy string, updatedAt time.Time) error
}

// InstallmentRepositoryFacade combines all installment-related repository interfaces
type InstallmentRepositoryFacade interface {
	InstallmentReader
	InstallmentWriter
}

// InstallmentRepositoryWithTx extends InstallmentRepositoryFacade with
// transaction capabilities. The payment path opens one transaction here and
// threads it through every repository it touches.
type InstallmentRepositoryWithTx interface {
	InstallmentRepositoryFacade
	TransactionManager
}
