package mapping

import (
	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/prestadero/lending-backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		LoanID:          d.LoanID,
		Amount:          d.Amount,
		Method:          string(d.Method),
		InstallmentWeek: d.InstallmentWeek,
		PaymentDate:     d.PaymentDate,
		StoreID:         d.StoreID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		LoanID:          m.LoanID,
		Amount:          m.Amount,
		Method:          domain.PaymentMethod(m.Method),
		InstallmentWeek: m.InstallmentWeek,
		PaymentDate:     m.PaymentDate,
		StoreID:         m.StoreID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
