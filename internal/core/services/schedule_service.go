package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/middleware"
	"github.com/prestadero/lending-backend/internal/utils/accounting"
)

// scheduleService builds and reads weekly installment plans.
type scheduleService struct {
	installmentRepo portsrepo.InstallmentRepositoryFacade
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(installmentRepo portsrepo.InstallmentRepositoryFacade) portssvc.ScheduleSvcFacade {
	return &scheduleService{
		installmentRepo: installmentRepo,
	}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// GenerateSchedule creates the weekly plan for a loan using a flat-rate split:
// total interest is principal times the flat rate, each week owes an equal
// share of principal+interest, and the last week absorbs the rounding residue
// so the columns sum exactly to the loan totals.
func (s *scheduleService) GenerateSchedule(ctx context.Context, loan *domain.Loan, actorID string) ([]domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if loan.TermWeeks <= 0 {
		return nil, apperrors.NewAppError(400, "loan term must be at least one week", apperrors.ErrValidation)
	}
	if !loan.Principal.IsPositive() {
		return nil, apperrors.NewAppError(400, "loan principal must be positive", apperrors.ErrValidation)
	}

	existing, err := s.installmentRepo.FindInstallmentsByLoanID(ctx, loan.LoanID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperrors.NewAppError(409, "loan already has a schedule", apperrors.ErrConflict)
	}

	totalInterest := accounting.RoundMoney(loan.Principal.Mul(loan.InterestRate))
	weeks := decimal.NewFromInt(int64(loan.TermWeeks))

	weeklyCapital := accounting.RoundMoney(loan.Principal.Div(weeks))
	weeklyInterest := accounting.RoundMoney(totalInterest.Div(weeks))

	now := time.Now().UTC()
	startDate := now

	installments := make([]domain.Installment, loan.TermWeeks)
	capitalLeft := loan.Principal
	interestLeft := totalInterest
	for w := 1; w <= loan.TermWeeks; w++ {
		capital := weeklyCapital
		interest := weeklyInterest
		if w == loan.TermWeeks {
			// Last week takes whatever the equal shares left over.
			capital = capitalLeft
			interest = interestLeft
		}
		capitalLeft = capitalLeft.Sub(capital)
		interestLeft = interestLeft.Sub(interest)

		installments[w-1] = domain.Installment{
			InstallmentID:   uuid.NewString(),
			LoanID:          loan.LoanID,
			WeekNumber:      w,
			DueDate:         startDate.AddDate(0, 0, 7*w),
			AmountDue:       capital.Add(interest),
			CapitalPortion:  capital,
			InterestPortion: interest,
			PenaltyApplied:  decimal.Zero,
			CapitalPaid:     decimal.Zero,
			InterestPaid:    decimal.Zero,
			PenaltyPaid:     decimal.Zero,
			Status:          domain.InstallmentPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}

	if err := s.installmentRepo.SaveInstallments(ctx, installments); err != nil {
		logger.Error("Failed to save installment schedule", slog.String("loan_id", loan.LoanID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Installment schedule generated",
		slog.String("loan_id", loan.LoanID),
		slog.Int("weeks", loan.TermWeeks),
		slog.String("total_interest", totalInterest.String()),
	)
	return installments, nil
}

// GetScheduleByLoanID returns a loan's installments ordered by week number.
func (s *scheduleService) GetScheduleByLoanID(ctx context.Context, loanID string, asOf time.Time) ([]domain.Installment, error) {
	installments, err := s.installmentRepo.FindInstallmentsByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return installments, nil
}
