package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestadero/lending-backend/internal/core/domain"
)

func newPaymentRepo(t *testing.T) (*PgxPaymentRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: mock}}, mock
}

func TestPaymentRepository_SumPaymentsForWeekInTx(t *testing.T) {
	ctx := context.Background()
	repo, mock := newPaymentRepo(t)
	loanID := uuid.NewString()

	mock.ExpectBegin()
	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments WHERE loan_id = \$1 AND installment_week = \$2`).
		WithArgs(loanID, 3).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.NewFromInt(450)))

	sum, err := repo.SumPaymentsForWeekInTx(ctx, tx, loanID, 3)

	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(450)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_SavePaymentInTx(t *testing.T) {
	ctx := context.Background()
	repo, mock := newPaymentRepo(t)

	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		LoanID:          uuid.NewString(),
		Amount:          decimal.NewFromInt(1000),
		Method:          domain.MethodEfectivo,
		InstallmentWeek: 1,
		PaymentDate:     time.Now(),
	}

	mock.ExpectBegin()
	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO payments`).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.SavePaymentInTx(ctx, tx, payment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_ListPaymentsByLoanID(t *testing.T) {
	ctx := context.Background()
	repo, mock := newPaymentRepo(t)
	loanID := uuid.NewString()
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"payment_id", "loan_id", "amount", "method", "installment_week", "payment_date",
		"store_id", "created_at", "created_by", "last_updated_at", "last_updated_by",
	}).
		AddRow(uuid.NewString(), loanID, decimal.NewFromInt(1000), "efectivo", 1, now.Add(-time.Hour), nil, now, "system", now, "system").
		AddRow(uuid.NewString(), loanID, decimal.NewFromInt(500), "transferencia", 2, now, nil, now, "system", now, "system")

	mock.ExpectQuery(`FROM payments WHERE loan_id = \$1 ORDER BY payment_date ASC`).
		WithArgs(loanID).
		WillReturnRows(rows)

	payments, err := repo.ListPaymentsByLoanID(ctx, loanID)

	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 1, payments[0].InstallmentWeek)
	assert.Equal(t, domain.MethodTransferencia, payments[1].Method)
	assert.NoError(t, mock.ExpectationsWereMet())
}
