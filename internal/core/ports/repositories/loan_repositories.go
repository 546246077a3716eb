package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prestadero/lending-backend/internal/core/domain"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	// SaveLoan persists a new loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoanStatus moves a loan to a new lifecycle status.
	UpdateLoanStatus(ctx context.Context, loanID string, status domain.LoanStatus, updatedBy string, updatedAt time.Time) error

	// UpdateLoanStatusInTx moves a loan to a new lifecycle status within an
	// open transaction (used by the posting path to flip PAID_OFF atomically).
	UpdateLoanStatusInTx(ctx context.Context, tx pgx.Tx, loanID string, status domain.LoanStatus, updatedBy string, updatedAt time.Time) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
