package dto

import (
	"time"

	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryResponse is the API shape of one double-entry ledger row.
type JournalEntryResponse struct {
	EntryID     string          `json:"entryID"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	SourceType  string          `json:"sourceType"`
	SourceID    string          `json:"sourceID"`
}

// ListJournalEntriesResponse is a page of journal rows with the cursor for
// the next page.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ChartAccountResponse is the API shape of one chart-of-accounts row.
type ChartAccountResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// ToJournalEntryResponses converts domain journal rows to their API shape.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = JournalEntryResponse{
			EntryID:     e.EntryID,
			EntryDate:   e.EntryDate,
			Description: e.Description,
			AccountCode: e.AccountCode,
			Debit:       e.Debit,
			Credit:      e.Credit,
			SourceType:  string(e.SourceType),
			SourceID:    e.SourceID,
		}
	}
	return out
}

// ToChartAccountResponses converts chart accounts to their API shape.
func ToChartAccountResponses(accounts []domain.ChartAccount) []ChartAccountResponse {
	out := make([]ChartAccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = ChartAccountResponse{
			Code:     a.Code,
			Name:     a.Name,
			Type:     string(a.Type),
			Category: a.Category,
		}
	}
	return out
}
