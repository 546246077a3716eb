package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	"github.com/prestadero/lending-backend/internal/models"
	"github.com/prestadero/lending-backend/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, loan_id, amount, method, installment_week, payment_date, store_id, created_at, created_by, last_updated_at, last_updated_by`

// SumPaymentsForWeekInTx totals the cash previously recorded against one
// installment week of a loan. Runs inside the payment transaction so it sees
// rows written earlier in the same payment.
func (r *PgxPaymentRepository) SumPaymentsForWeekInTx(ctx context.Context, tx pgx.Tx, loanID string, weekNumber int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE loan_id = $1 AND installment_week = $2;
	`
	var sum decimal.Decimal
	if err := tx.QueryRow(ctx, query, loanID, weekNumber).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum payments for loan "+loanID, err)
	}
	return sum, nil
}

// ListPaymentsByLoanID retrieves all payments recorded against a loan, oldest first.
func (r *PgxPaymentRepository) ListPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE loan_id = $1
		ORDER BY payment_date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for loan "+loanID, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var m models.Payment
		err := rows.Scan(
			&m.PaymentID,
			&m.LoanID,
			&m.Amount,
			&m.Method,
			&m.InstallmentWeek,
			&m.PaymentDate,
			&m.StoreID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for loan "+loanID, err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for loan "+loanID, err)
	}

	return mapping.ToDomainPaymentSlice(payments), nil
}

// SavePaymentInTx appends one payment row within an open transaction.
func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.LoanID,
		m.Amount,
		m.Method,
		m.InstallmentWeek,
		m.PaymentDate,
		m.StoreID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}
	return nil
}
