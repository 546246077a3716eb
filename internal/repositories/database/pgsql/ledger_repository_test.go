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

func newLedgerRepo(t *testing.T) (*PgxLedgerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: mock}}, mock
}

var journalColumns = []string{
	"entry_id", "entry_date", "description", "account_code", "debit", "credit",
	"source_type", "source_id", "created_at", "created_by", "last_updated_at", "last_updated_by",
}

func journalEntryRow(rows *pgxmock.Rows, account string, debit, credit decimal.Decimal, entryDate, createdAt time.Time) *pgxmock.Rows {
	return rows.AddRow(
		uuid.NewString(), entryDate, "Payment week 1", account, debit, credit,
		"payment", uuid.NewString(), createdAt, "system", createdAt, "system",
	)
}

func TestLedgerRepository_SaveJournalEntriesInTx(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLedgerRepo(t)
	paymentID := uuid.NewString()

	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), AccountCode: "1101", Debit: decimal.NewFromInt(1000), Credit: decimal.Zero, SourceType: domain.SourcePayment, SourceID: paymentID},
		{EntryID: uuid.NewString(), AccountCode: "1103", Debit: decimal.Zero, Credit: decimal.NewFromInt(800), SourceType: domain.SourcePayment, SourceID: paymentID},
		{EntryID: uuid.NewString(), AccountCode: "4100", Debit: decimal.Zero, Credit: decimal.NewFromInt(200), SourceType: domain.SourcePayment, SourceID: paymentID},
	}

	mock.ExpectBegin()
	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	eb := mock.ExpectBatch()
	for range entries {
		eb.ExpectExec(`INSERT INTO journal_entries`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	err = repo.SaveJournalEntriesInTx(ctx, tx, entries)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_FindJournalEntriesBySource(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLedgerRepo(t)
	paymentID := uuid.NewString()
	now := time.Now().UTC()

	rows := pgxmock.NewRows(journalColumns)
	journalEntryRow(rows, "1101", decimal.NewFromInt(1000), decimal.Zero, now, now)
	journalEntryRow(rows, "1103", decimal.Zero, decimal.NewFromInt(1000), now, now)

	mock.ExpectQuery(`FROM journal_entries WHERE source_type = \$1 AND source_id = \$2`).
		WithArgs("payment", paymentID).
		WillReturnRows(rows)

	entries, err := repo.FindJournalEntriesBySource(ctx, domain.SourcePayment, paymentID)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1101", entries[0].AccountCode)
	assert.True(t, entries[0].Debit.Equal(decimal.NewFromInt(1000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_ListJournalEntries_FirstPage(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLedgerRepo(t)
	now := time.Now().UTC()

	// Three rows against a limit of two: a next-page token must come back.
	rows := pgxmock.NewRows(journalColumns)
	journalEntryRow(rows, "1101", decimal.NewFromInt(1000), decimal.Zero, now, now)
	journalEntryRow(rows, "1103", decimal.Zero, decimal.NewFromInt(800), now.Add(-time.Hour), now.Add(-time.Hour))
	journalEntryRow(rows, "4100", decimal.Zero, decimal.NewFromInt(200), now.Add(-2*time.Hour), now.Add(-2*time.Hour))

	mock.ExpectQuery(`FROM journal_entries ORDER BY entry_date DESC, created_at DESC LIMIT \$1`).
		WithArgs(3).
		WillReturnRows(rows)

	entries, nextToken, err := repo.ListJournalEntries(ctx, 2, nil)

	require.NoError(t, err)
	assert.Len(t, entries, 2)
	require.NotNil(t, nextToken)
	assert.NotEmpty(t, *nextToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_ListJournalEntries_LastPage(t *testing.T) {
	ctx := context.Background()
	repo, mock := newLedgerRepo(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows(journalColumns)
	journalEntryRow(rows, "1101", decimal.NewFromInt(1000), decimal.Zero, now, now)

	mock.ExpectQuery(`FROM journal_entries ORDER BY entry_date DESC, created_at DESC LIMIT \$1`).
		WithArgs(3).
		WillReturnRows(rows)

	entries, nextToken, err := repo.ListJournalEntries(ctx, 2, nil)

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Nil(t, nextToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_ListJournalEntries_InvalidToken(t *testing.T) {
	ctx := context.Background()
	repo, _ := newLedgerRepo(t)

	bad := "not-a-valid-cursor"
	_, _, err := repo.ListJournalEntries(ctx, 10, &bad)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid nextToken")
}
