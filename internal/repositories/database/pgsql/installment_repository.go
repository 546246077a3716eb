package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	"github.com/prestadero/lending-backend/internal/models"
	"github.com/prestadero/lending-backend/internal/utils/mapping"
)

type PgxInstallmentRepository struct {
	BaseRepository
}

// newPgxInstallmentRepository creates a new repository for installment data.
func newPgxInstallmentRepository(pool *pgxpool.Pool) portsrepo.InstallmentRepositoryWithTx {
	return &PgxInstallmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInstallmentRepository implements portsrepo.InstallmentRepositoryWithTx
var _ portsrepo.InstallmentRepositoryWithTx = (*PgxInstallmentRepository)(nil)

const installmentColumns = `installment_id, loan_id, week_number, due_date, amount_due, capital_portion, interest_portion, penalty_applied, last_penalty_applied, capital_paid, interest_paid, penalty_paid, status, created_at, created_by, last_updated_at, last_updated_by`

func scanInstallmentRows(rows pgx.Rows) ([]models.Installment, error) {
	defer rows.Close()

	installments := []models.Installment{}
	for rows.Next() {
		var m models.Installment
		err := rows.Scan(
			&m.InstallmentID,
			&m.LoanID,
			&m.WeekNumber,
			&m.DueDate,
			&m.AmountDue,
			&m.CapitalPortion,
			&m.InterestPortion,
			&m.PenaltyApplied,
			&m.LastPenaltyApplied,
			&m.CapitalPaid,
			&m.InterestPaid,
			&m.PenaltyPaid,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, err
		}
		installments = append(installments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return installments, nil
}

// FindInstallmentsByLoanID retrieves every installment of a loan ordered by week number.
func (r *PgxInstallmentRepository) FindInstallmentsByLoanID(ctx context.Context, loanID string) ([]domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE loan_id = $1
		ORDER BY week_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query installments for loan "+loanID, err)
	}

	ms, err := scanInstallmentRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan installment rows for loan "+loanID, err)
	}
	return mapping.ToDomainInstallmentSlice(ms), nil
}

// FindPendingByLoanIDForUpdate retrieves the pending installments of a loan
// ordered by week number, locking the rows until the transaction ends. The
// lock serializes concurrent payments against the same loan.
func (r *PgxInstallmentRepository) FindPendingByLoanIDForUpdate(ctx context.Context, tx pgx.Tx, loanID string) ([]domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE loan_id = $1 AND status = $2
		ORDER BY week_number ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, loanID, string(domain.InstallmentPending))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock pending installments for loan "+loanID, err)
	}

	ms, err := scanInstallmentRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan locked installment rows for loan "+loanID, err)
	}
	return mapping.ToDomainInstallmentSlice(ms), nil
}

// CountPendingInTx counts the remaining pending installments of a loan within an open transaction.
func (r *PgxInstallmentRepository) CountPendingInTx(ctx context.Context, tx pgx.Tx, loanID string) (int, error) {
	query := `SELECT COUNT(*) FROM installments WHERE loan_id = $1 AND status = $2;`

	var count int
	if err := tx.QueryRow(ctx, query, loanID, string(domain.InstallmentPending)).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count pending installments for loan "+loanID, err)
	}
	return count, nil
}

// SaveInstallments persists a freshly generated schedule as a batch.
func (r *PgxInstallmentRepository) SaveInstallments(ctx context.Context, installments []domain.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	batch := &pgx.Batch{}
	for _, inst := range installments {
		m := mapping.ToModelInstallment(inst)
		batch.Queue(query,
			m.InstallmentID,
			m.LoanID,
			m.WeekNumber,
			m.DueDate,
			m.AmountDue,
			m.CapitalPortion,
			m.InterestPortion,
			m.PenaltyApplied,
			m.LastPenaltyApplied,
			m.CapitalPaid,
			m.InterestPaid,
			m.PenaltyPaid,
			m.Status,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for range installments {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert installment batch", err)
		}
	}
	return nil
}

// ApplyPenaltyInTx increments penalty_applied by delta and stamps
// last_penalty_applied, within an open transaction.
func (r *PgxInstallmentRepository) ApplyPenaltyInTx(ctx context.Context, tx pgx.Tx, installmentID string, delta decimal.Decimal, accruedOn time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE installments
		SET penalty_applied = penalty_applied + $2,
		    last_penalty_applied = $3,
		    last_updated_by = $4,
		    last_updated_at = $5
		WHERE installment_id = $1;
	`
	tag, err := tx.Exec(ctx, query, installmentID, delta, accruedOn, updatedBy, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply penalty to installment "+installmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("installment " + installmentID + " not found")
	}
	return nil
}

// ApplyCollectionInTx adds the collected components to the cumulative paid
// columns and sets the recomputed status, within an open transaction.
func (r *PgxInstallmentRepository) ApplyCollectionInTx(ctx context.Context, tx pgx.Tx, installmentID string, penalty, interest, capital decimal.Decimal, status domain.InstallmentStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE installments
		SET penalty_paid = penalty_paid + $2,
		    interest_paid = interest_paid + $3,
		    capital_paid = capital_paid + $4,
		    status = $5,
		    last_updated_by = $6,
		    last_updated_at = $7
		WHERE installment_id = $1;
	`
	tag, err := tx.Exec(ctx, query, installmentID, penalty, interest, capital, string(status), updatedBy, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply collection to installment "+installmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("installment " + installmentID + " not found")
	}
	return nil
}
