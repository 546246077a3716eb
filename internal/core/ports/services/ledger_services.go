package services

import (
	"context"

	"github.com/prestadero/lending-backend/internal/core/domain"
)

// LedgerSvcFacade defines read-side ledger and chart of accounts operations.
type LedgerSvcFacade interface {
	// GetJournalEntriesBySource returns the journal lines posted for a source document.
	GetJournalEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error)
	// ListJournalEntries pages through all journal lines, newest first.
	ListJournalEntries(ctx context.Context, limit int, nextToken string) ([]domain.JournalEntry, string, error)
	// GetAccountingEntriesBySource returns the legacy accounting rows for a source document.
	GetAccountingEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.AccountingEntry, error)
	// ListChartOfAccounts returns every configured ledger account.
	ListChartOfAccounts(ctx context.Context) ([]domain.ChartAccount, error)
	// GetChartAccountByCode retrieves one ledger account by its stable code.
	GetChartAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error)
}
