package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	"github.com/prestadero/lending-backend/internal/models"
	"github.com/prestadero/lending-backend/internal/utils/mapping"
)

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepositoryFacade
var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, customer_name, principal, interest_rate, term_weeks, loan_type, status, store_id, created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.CustomerName,
		&m.Principal,
		&m.InterestRate,
		&m.TermWeeks,
		&m.LoanType,
		&m.Status,
		&m.StoreID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindLoanByID retrieves a specific loan by its unique identifier.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("loan " + loanID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find loan by ID "+loanID, err)
	}

	domainLoan := mapping.ToDomainLoan(m)
	return &domainLoan, nil
}

// SaveLoan persists a new loan.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LoanID,
		m.CustomerName,
		m.Principal,
		m.InterestRate,
		m.TermWeeks,
		m.LoanType,
		m.Status,
		m.StoreID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewAppError(409, "loan "+m.LoanID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert loan "+m.LoanID, err)
	}
	return nil
}

// UpdateLoanStatus moves a loan to a new lifecycle status.
func (r *PgxLoanRepository) UpdateLoanStatus(ctx context.Context, loanID string, status domain.LoanStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE loans
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE loan_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, loanID, string(status), updatedBy, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of loan "+loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("loan " + loanID + " not found")
	}
	return nil
}

// UpdateLoanStatusInTx moves a loan to a new lifecycle status within an open transaction.
func (r *PgxLoanRepository) UpdateLoanStatusInTx(ctx context.Context, tx pgx.Tx, loanID string, status domain.LoanStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE loans
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE loan_id = $1;
	`
	tag, err := tx.Exec(ctx, query, loanID, string(status), updatedBy, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of loan "+loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("loan " + loanID + " not found")
	}
	return nil
}
