package services

import (
	"context"

	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/prestadero/lending-backend/internal/dto"
)

// LoanSvcFacade defines loan lifecycle operations.
type LoanSvcFacade interface {
	// CreateLoan registers a new loan in PENDING status.
	CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actorID string) (*domain.Loan, error)
	// GetLoanByID fetches a single loan.
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	// ActivateLoan marks a loan as delivered and generates its installment schedule.
	ActivateLoan(ctx context.Context, loanID string, actorID string) (*domain.Loan, error)
}
