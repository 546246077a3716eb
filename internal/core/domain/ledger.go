package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType tags ledger rows with the business event that produced them,
// for audit trails (query by source_type + source_id).
type SourceType string

const (
	SourcePayment SourceType = "payment"
)

// JournalEntry is one double-entry ledger row. Exactly one of Debit/Credit is
// non-zero per row; across the rows of one business event the debit and credit
// totals are equal.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	AccountCode string          `json:"accountCode"` // FK into chart_of_accounts
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	SourceType  SourceType      `json:"sourceType"`
	SourceID    string          `json:"sourceID"`
	AuditFields
}

// EntryType is the closed set of legacy accounting-entry categories.
// Free-form strings are rejected at the boundary.
type EntryType string

const (
	EntryCash         EntryType = "cash"
	EntryCapitalPaid  EntryType = "capitalPaid"
	EntryInterestPaid EntryType = "interestPaid"
	EntryPenaltyPaid  EntryType = "penaltyPaid"
)

// IsValid reports whether t is a known accounting entry type.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryCash, EntryCapitalPaid, EntryInterestPaid, EntryPenaltyPaid:
		return true
	}
	return false
}

// AccountingEntry is the legacy single-sided categorization row kept in
// parallel with the journal. Reporting aggregates over these; they are not
// double-entry.
type AccountingEntry struct {
	AccountingEntryID string          `json:"accountingEntryID"`
	LoanID            string          `json:"loanID"`
	EntryType         EntryType       `json:"entryType"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	SourceType        SourceType      `json:"sourceType"`
	SourceID          string          `json:"sourceID"`
	AuditFields
}
