package mapping

import (
	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/prestadero/lending-backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		SourceType:  string(d.SourceType),
		SourceID:    d.SourceID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		SourceType:  domain.SourceType(m.SourceType),
		SourceID:    m.SourceID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts model JournalEntries to domain JournalEntries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToModelAccountingEntry converts a domain AccountingEntry to a model AccountingEntry
func ToModelAccountingEntry(d domain.AccountingEntry) models.AccountingEntry {
	return models.AccountingEntry{
		AccountingEntryID: d.AccountingEntryID,
		LoanID:            d.LoanID,
		EntryType:         string(d.EntryType),
		Amount:            d.Amount,
		Description:       d.Description,
		SourceType:        string(d.SourceType),
		SourceID:          d.SourceID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountingEntry converts a model AccountingEntry to a domain AccountingEntry
func ToDomainAccountingEntry(m models.AccountingEntry) domain.AccountingEntry {
	return domain.AccountingEntry{
		AccountingEntryID: m.AccountingEntryID,
		LoanID:            m.LoanID,
		EntryType:         domain.EntryType(m.EntryType),
		Amount:            m.Amount,
		Description:       m.Description,
		SourceType:        domain.SourceType(m.SourceType),
		SourceID:          m.SourceID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountingEntrySlice converts model AccountingEntries to domain AccountingEntries
func ToDomainAccountingEntrySlice(ms []models.AccountingEntry) []domain.AccountingEntry {
	ds := make([]domain.AccountingEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountingEntry(m)
	}
	return ds
}

// ToDomainChartAccount converts a model ChartAccount to a domain ChartAccount
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		Code:     m.Code,
		Name:     m.Name,
		Type:     domain.AccountType(m.Type),
		Category: m.Category,
	}
}

// ToDomainChartAccountSlice converts model ChartAccounts to domain ChartAccounts
func ToDomainChartAccountSlice(ms []models.ChartAccount) []domain.ChartAccount {
	ds := make([]domain.ChartAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainChartAccount(m)
	}
	return ds
}
