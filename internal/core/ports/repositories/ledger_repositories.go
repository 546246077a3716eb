package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/prestadero/lending-backend/internal/core/domain"
)

// LedgerWriter defines write operations for journal and accounting rows
type LedgerWriter interface {
	// SaveJournalEntriesInTx appends the journal rows of one business event
	// within an open transaction.
	SaveJournalEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error

	// SaveAccountingEntriesInTx appends legacy accounting rows within an open
	// transaction.
	SaveAccountingEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.AccountingEntry) error
}

// LedgerReader defines read operations for audit trails over the ledger
type LedgerReader interface {
	// FindJournalEntriesBySource retrieves the journal rows produced by one
	// business event, ordered by creation time.
	FindJournalEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error)

	// ListJournalEntries retrieves a paginated list of journal rows using
	// token-based pagination. It returns the entries, a token for the next
	// page, and an error.
	ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindAccountingEntriesBySource retrieves the legacy accounting rows
	// produced by one business event.
	FindAccountingEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.AccountingEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}

// ChartRepositoryFacade exposes the seeded chart of accounts. Read-only.
type ChartRepositoryFacade interface {
	// FindAccountByCode retrieves one chart account by its stable code.
	FindAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error)

	// ListAccounts retrieves the full chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.ChartAccount, error)
}
