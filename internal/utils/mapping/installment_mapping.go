package mapping

import (
	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/prestadero/lending-backend/internal/models"
)

// ToModelInstallment converts a domain Installment to a model Installment
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID:      d.InstallmentID,
		LoanID:             d.LoanID,
		WeekNumber:         d.WeekNumber,
		DueDate:            d.DueDate,
		AmountDue:          d.AmountDue,
		CapitalPortion:     d.CapitalPortion,
		InterestPortion:    d.InterestPortion,
		PenaltyApplied:     d.PenaltyApplied,
		LastPenaltyApplied: d.LastPenaltyApplied,
		CapitalPaid:        d.CapitalPaid,
		InterestPaid:       d.InterestPaid,
		PenaltyPaid:        d.PenaltyPaid,
		Status:             string(d.Status),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID:      m.InstallmentID,
		LoanID:             m.LoanID,
		WeekNumber:         m.WeekNumber,
		DueDate:            m.DueDate,
		AmountDue:          m.AmountDue,
		CapitalPortion:     m.CapitalPortion,
		InterestPortion:    m.InterestPortion,
		PenaltyApplied:     m.PenaltyApplied,
		LastPenaltyApplied: m.LastPenaltyApplied,
		CapitalPaid:        m.CapitalPaid,
		InterestPaid:       m.InterestPaid,
		PenaltyPaid:        m.PenaltyPaid,
		Status:             domain.InstallmentStatus(m.Status),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts a slice of model Installments to domain Installments
func ToDomainInstallmentSlice(ms []models.Installment) []domain.Installment {
	ds := make([]domain.Installment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstallment(m)
	}
	return ds
}
