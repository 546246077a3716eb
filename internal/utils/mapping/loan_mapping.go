package mapping

import (
	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/prestadero/lending-backend/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:       d.LoanID,
		CustomerName: d.CustomerName,
		Principal:    d.Principal,
		InterestRate: d.InterestRate,
		TermWeeks:    d.TermWeeks,
		LoanType:     string(d.LoanType),
		Status:       models.LoanStatus(d.Status),
		StoreID:      d.StoreID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:       m.LoanID,
		CustomerName: m.CustomerName,
		Principal:    m.Principal,
		InterestRate: m.InterestRate,
		TermWeeks:    m.TermWeeks,
		LoanType:     domain.LoanType(m.LoanType),
		Status:       domain.LoanStatus(m.Status),
		StoreID:      m.StoreID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
