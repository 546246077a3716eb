package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/dto"
)

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

var _ portsrepo.LoanRepositoryFacade = (*MockLoanRepository)(nil)

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoanStatus(ctx context.Context, loanID string, status domain.LoanStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, loanID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoanStatusInTx(ctx context.Context, tx pgx.Tx, loanID string, status domain.LoanStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, loanID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock InstallmentRepository ---
type MockInstallmentRepository struct {
	mock.Mock
}

var _ portsrepo.InstallmentRepositoryWithTx = (*MockInstallmentRepository)(nil)

func (m *MockInstallmentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInstallmentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInstallmentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInstallmentRepository) FindInstallmentsByLoanID(ctx context.Context, loanID string) ([]domain.Installment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindPendingByLoanIDForUpdate(ctx context.Context, tx pgx.Tx, loanID string) ([]domain.Installment, error) {
	args := m.Called(ctx, tx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) CountPendingInTx(ctx context.Context, tx pgx.Tx, loanID string) (int, error) {
	args := m.Called(ctx, tx, loanID)
	return args.Int(0), args.Error(1)
}

func (m *MockInstallmentRepository) SaveInstallments(ctx context.Context, installments []domain.Installment) error {
	args := m.Called(ctx, installments)
	return args.Error(0)
}

func (m *MockInstallmentRepository) ApplyPenaltyInTx(ctx context.Context, tx pgx.Tx, installmentID string, delta decimal.Decimal, accruedOn time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, installmentID, delta, accruedOn, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInstallmentRepository) ApplyCollectionInTx(ctx context.Context, tx pgx.Tx, installmentID string, penalty, interest, capital decimal.Decimal, status domain.InstallmentStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, installmentID, penalty, interest, capital, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) SumPaymentsForWeekInTx(ctx context.Context, tx pgx.Tx, loanID string, weekNumber int) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, loanID, weekNumber)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveJournalEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveAccountingEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.AccountingEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindJournalEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) FindAccountingEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.AccountingEntry, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingEntry), args.Error(1)
}

// --- Mock ChartRepository ---
type MockChartRepository struct {
	mock.Mock
}

var _ portsrepo.ChartRepositoryFacade = (*MockChartRepository)(nil)

func (m *MockChartRepository) FindAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartRepository) ListAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartAccount), args.Error(1)
}

// --- Mock ReceiptDispatcher ---
type MockReceiptDispatcher struct {
	mock.Mock
}

var _ portssvc.ReceiptDispatcher = (*MockReceiptDispatcher)(nil)

func (m *MockReceiptDispatcher) Dispatch(ctx context.Context, receipt dto.PaymentReceipt) bool {
	args := m.Called(ctx, receipt)
	return args.Bool(0)
}

func (m *MockReceiptDispatcher) Close() {
	m.Called()
}
