package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row. Append-only.
type JournalEntry struct {
	EntryID     string          `db:"entry_id"`
	EntryDate   time.Time       `db:"entry_date"`
	Description string          `db:"description"`
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	SourceType  string          `db:"source_type"`
	SourceID    string          `db:"source_id"`
	AuditFields
}

// AccountingEntry is the accounting_entries table row (legacy categorization).
type AccountingEntry struct {
	AccountingEntryID string          `db:"accounting_entry_id"`
	LoanID            string          `db:"loan_id"`
	EntryType         string          `db:"entry_type"`
	Amount            decimal.Decimal `db:"amount"`
	Description       string          `db:"description"`
	SourceType        string          `db:"source_type"`
	SourceID          string          `db:"source_id"`
	AuditFields
}

// ChartAccount is the chart_of_accounts table row. Seeded by migration,
// read-only to the application.
type ChartAccount struct {
	Code     string `db:"code"`
	Name     string `db:"name"`
	Type     string `db:"type"`
	Category string `db:"category"`
}
