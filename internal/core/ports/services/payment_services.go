package services

import (
	"context"

	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/prestadero/lending-backend/internal/dto"
)

// PaymentSvcFacade defines payment intake and allocation operations.
type PaymentSvcFacade interface {
	// ApplyPayment validates, allocates and posts a payment against the
	// oldest unpaid installments of a loan, all within one transaction.
	ApplyPayment(ctx context.Context, loanID string, req dto.ApplyPaymentRequest, actorID string) (*dto.ApplyPaymentResponse, error)

	// ListPaymentsByLoan returns every payment recorded against a loan,
	// oldest first.
	ListPaymentsByLoan(ctx context.Context, loanID string) ([]domain.Payment, error)
}
