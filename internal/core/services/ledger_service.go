package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/middleware"
)

const defaultLedgerPageSize = 50

// ledgerService exposes the read side of the ledger for audit trails.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	chartRepo  portsrepo.ChartRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, chartRepo portsrepo.ChartRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		chartRepo:  chartRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetJournalEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	return s.ledgerRepo.FindJournalEntriesBySource(ctx, sourceType, sourceID)
}

func (s *ledgerService) ListJournalEntries(ctx context.Context, limit int, nextToken string) ([]domain.JournalEntry, string, error) {
	if limit <= 0 {
		limit = defaultLedgerPageSize
	}
	var token *string
	if nextToken != "" {
		token = &nextToken
	}
	entries, next, err := s.ledgerRepo.ListJournalEntries(ctx, limit, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, "", err
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to list journal entries: %w", apperrors.ErrInternal)
	}
	out := ""
	if next != nil {
		out = *next
	}
	return entries, out, nil
}

func (s *ledgerService) GetAccountingEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.AccountingEntry, error) {
	return s.ledgerRepo.FindAccountingEntriesBySource(ctx, sourceType, sourceID)
}

func (s *ledgerService) ListChartOfAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	return s.chartRepo.ListAccounts(ctx)
}

func (s *ledgerService) GetChartAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error) {
	return s.chartRepo.FindAccountByCode(ctx, code)
}
