package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/dto"
	"github.com/prestadero/lending-backend/internal/middleware"
)

// loanService manages the loan lifecycle around the payment engine.
type loanService struct {
	loanRepo    portsrepo.LoanRepositoryFacade
	scheduleSvc portssvc.ScheduleSvcFacade
}

// NewLoanService creates a new LoanService.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, scheduleSvc portssvc.ScheduleSvcFacade) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:    loanRepo,
		scheduleSvc: scheduleSvc,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// CreateLoan registers a new loan in PENDING status. The installment plan is
// only generated later, on activation.
func (s *loanService) CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actorID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}
	if req.InterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	loan := domain.Loan{
		LoanID:       uuid.NewString(),
		CustomerName: req.CustomerName,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		TermWeeks:    req.TermWeeks,
		LoanType:     domain.LoanType(req.LoanType),
		Status:       domain.LoanPending,
		StoreID:      req.StoreID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		logger.Error("Failed to save loan", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Loan created", slog.String("loan_id", loan.LoanID), slog.String("loan_type", string(loan.LoanType)))
	return &loan, nil
}

// GetLoanByID fetches a single loan.
func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return s.loanRepo.FindLoanByID(ctx, loanID)
}

// ActivateLoan marks a pending loan as delivered and generates its weekly
// schedule. From this point the loan accepts payments.
func (s *loanService) ActivateLoan(ctx context.Context, loanID string, actorID string) (*domain.Loan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	switch loan.Status {
	case domain.LoanPending, domain.LoanPendingAdminApproval, domain.LoanApproved:
		// Activatable.
	default:
		return nil, fmt.Errorf("%w: loan %s is already %s", apperrors.ErrConflict, loanID, loan.Status)
	}

	if _, err := s.scheduleSvc.GenerateSchedule(ctx, loan, actorID); err != nil {
		return nil, err
	}

	if err := s.loanRepo.UpdateLoanStatus(ctx, loanID, domain.LoanDelivered, actorID, time.Now().UTC()); err != nil {
		logger.Error("Failed to update loan status", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, err
	}
	loan.Status = domain.LoanDelivered

	logger.Info("Loan activated", slog.String("loan_id", loanID))
	return loan, nil
}
