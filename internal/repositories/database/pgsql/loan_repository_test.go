package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
)

func newLoanRepo(t *testing.T) (*PgxLoanRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: mock}}, mock
}

func TestLoanRepository_FindLoanByID(t *testing.T) {
	ctx := context.Background()
	loanID := uuid.NewString()
	now := time.Now().UTC()

	query := `SELECT (.+) FROM loans WHERE loan_id = \$1`

	t.Run("success", func(t *testing.T) {
		repo, mock := newLoanRepo(t)
		rows := pgxmock.NewRows([]string{
			"loan_id", "customer_name", "principal", "interest_rate", "term_weeks",
			"loan_type", "status", "store_id", "created_at", "created_by", "last_updated_at", "last_updated_by",
		}).AddRow(
			loanID, "Maria Lopez", decimal.NewFromInt(10000), decimal.RequireFromString("0.40"), 14,
			"efectivo", "DELIVERED", nil, now, "system", now, "system",
		)

		mock.ExpectQuery(query).WithArgs(loanID).WillReturnRows(rows)

		loan, err := repo.FindLoanByID(ctx, loanID)

		require.NoError(t, err)
		assert.Equal(t, loanID, loan.LoanID)
		assert.Equal(t, domain.LoanDelivered, loan.Status)
		assert.Equal(t, domain.LoanTypeCash, loan.LoanType)
		assert.True(t, loan.Principal.Equal(decimal.NewFromInt(10000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newLoanRepo(t)
		mock.ExpectQuery(query).WithArgs(loanID).WillReturnError(pgx.ErrNoRows)

		loan, err := repo.FindLoanByID(ctx, loanID)

		require.Error(t, err)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestLoanRepository_UpdateLoanStatus(t *testing.T) {
	ctx := context.Background()
	loanID := uuid.NewString()
	now := time.Now().UTC()

	query := `UPDATE loans SET status = \$2`

	t.Run("success", func(t *testing.T) {
		repo, mock := newLoanRepo(t)
		mock.ExpectExec(query).
			WithArgs(loanID, "DELIVERED", "system", now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateLoanStatus(ctx, loanID, domain.LoanDelivered, "system", now)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown loan", func(t *testing.T) {
		repo, mock := newLoanRepo(t)
		mock.ExpectExec(query).
			WithArgs(loanID, "DELIVERED", "system", now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateLoanStatus(ctx, loanID, domain.LoanDelivered, "system", now)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestLoanRepository_UpdateLoanStatusInTx(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLoanRepo(t)
	loanID := uuid.NewString()
	now := time.Now().UTC()

	mock.ExpectBegin()
	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE loans SET status = \$2`).
		WithArgs(loanID, "PAID_OFF", "system", now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateLoanStatusInTx(ctx, tx, loanID, domain.LoanPaidOff, "system", now)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_SaveLoan(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLoanRepo(t)

	loan := domain.Loan{
		LoanID:       uuid.NewString(),
		CustomerName: "Jorge Ruiz",
		Principal:    decimal.NewFromInt(5000),
		InterestRate: decimal.RequireFromString("0.40"),
		TermWeeks:    14,
		LoanType:     domain.LoanTypeCash,
		Status:       domain.LoanPending,
	}

	mock.ExpectExec(`INSERT INTO loans`).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.SaveLoan(ctx, loan)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
