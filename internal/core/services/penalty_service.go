package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/middleware"
	"github.com/prestadero/lending-backend/internal/utils/accounting"
)

const (
	// smallDueThreshold separates the flat penalty from the percentage one.
	smallDueThresholdStr = "500"

	// flatPenaltyStr is charged per late day on small installments.
	flatPenaltyStr = "50"

	// penaltyRateStr is charged per late day on installments at or above the threshold.
	penaltyRateStr = "0.10"
)

var (
	smallDueThreshold = decimal.RequireFromString(smallDueThresholdStr)
	flatPenalty       = decimal.RequireFromString(flatPenaltyStr)
	penaltyRate       = decimal.RequireFromString(penaltyRateStr)
)

// penaltyService applies late fees to overdue installments.
type penaltyService struct {
	installmentRepo portsrepo.InstallmentRepositoryWithTx
	loanRepo        portsrepo.LoanRepositoryFacade
}

// NewPenaltyService creates a new PenaltyService.
func NewPenaltyService(installmentRepo portsrepo.InstallmentRepositoryWithTx, loanRepo portsrepo.LoanRepositoryFacade) portssvc.PenaltySvcFacade {
	return &penaltyService{
		installmentRepo: installmentRepo,
		loanRepo:        loanRepo,
	}
}

var _ portssvc.PenaltySvcFacade = (*penaltyService)(nil)

// alreadyAccruedOn reports whether a penalty was applied on the asOf calendar day.
// Installments that have never accrued carry the due date as their marker.
func alreadyAccruedOn(inst *domain.Installment, asOf time.Time) bool {
	marker := inst.DueDate
	if inst.LastPenaltyApplied != nil {
		marker = *inst.LastPenaltyApplied
	}
	mY, mM, mD := marker.Date()
	aY, aM, aD := asOf.Date()
	return mY == aY && mM == aM && mD == aD
}

// penaltyFor computes one day's penalty for the installment.
func penaltyFor(inst *domain.Installment) decimal.Decimal {
	if inst.AmountDue.LessThan(smallDueThreshold) {
		return flatPenalty
	}
	return accounting.RoundMoney(inst.AmountDue.Mul(penaltyRate))
}

// AccrueInTx applies at most one day's penalty to the installment inside the
// caller's transaction. Failures surface through the outcome rather than an
// error so a payment in flight can proceed without the penalty.
func (s *penaltyService) AccrueInTx(ctx context.Context, tx pgx.Tx, installment *domain.Installment, asOf time.Time, actorID string) domain.AccrualOutcome {
	logger := middleware.GetLoggerFromCtx(ctx)

	if installment.Status == domain.InstallmentPaid || installment.IsSettled() {
		return domain.AccrualOutcome{
			Status:     domain.AccrualSkipped,
			WeekNumber: installment.WeekNumber,
			NewTotal:   installment.PenaltyApplied,
			Reason:     "installment already settled",
		}
	}

	if !installment.IsOverdueAt(asOf) {
		return domain.AccrualOutcome{
			Status:     domain.AccrualSkipped,
			WeekNumber: installment.WeekNumber,
			NewTotal:   installment.PenaltyApplied,
			Reason:     "not overdue",
		}
	}

	if alreadyAccruedOn(installment, asOf) {
		return domain.AccrualOutcome{
			Status:     domain.AccrualSkipped,
			WeekNumber: installment.WeekNumber,
			NewTotal:   installment.PenaltyApplied,
			Reason:     "penalty already applied today",
		}
	}

	delta := penaltyFor(installment)
	now := time.Now().UTC()

	if err := s.installmentRepo.ApplyPenaltyInTx(ctx, tx, installment.InstallmentID, delta, asOf, actorID, now); err != nil {
		logger.Error("Failed to persist penalty accrual",
			slog.String("installment_id", installment.InstallmentID),
			slog.Int("week_number", installment.WeekNumber),
			slog.String("error", err.Error()),
		)
		return domain.AccrualOutcome{
			Status:     domain.AccrualFailed,
			WeekNumber: installment.WeekNumber,
			NewTotal:   installment.PenaltyApplied,
			Reason:     "persistence failed",
			Err:        err,
		}
	}

	// Mirror the persisted change on the in-memory installment so the caller
	// allocates against the fresh totals.
	installment.PenaltyApplied = installment.PenaltyApplied.Add(delta)
	accruedAt := asOf
	installment.LastPenaltyApplied = &accruedAt
	installment.AuditFields.LastUpdatedAt = now
	installment.AuditFields.LastUpdatedBy = actorID

	logger.Info("Penalty accrued",
		slog.String("installment_id", installment.InstallmentID),
		slog.Int("week_number", installment.WeekNumber),
		slog.String("delta", delta.String()),
		slog.String("new_total", installment.PenaltyApplied.String()),
	)

	return domain.AccrualOutcome{
		Status:       domain.AccrualApplied,
		WeekNumber:   installment.WeekNumber,
		PenaltyDelta: delta,
		NewTotal:     installment.PenaltyApplied,
	}
}

// AccrueLoanPenalties applies any pending penalties for every unpaid
// installment of a loan in one transaction. Individual failures are reported
// per installment and do not abort the batch.
func (s *penaltyService) AccrueLoanPenalties(ctx context.Context, loanID string, asOf time.Time, actorID string) ([]domain.AccrualOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}

	tx, err := s.installmentRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for penalty accrual", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer s.installmentRepo.Rollback(ctx, tx)

	installments, err := s.installmentRepo.FindPendingByLoanIDForUpdate(ctx, tx, loanID)
	if err != nil {
		logger.Error("Failed to load pending installments", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, err
	}

	outcomes := make([]domain.AccrualOutcome, 0, len(installments))
	for i := range installments {
		outcomes = append(outcomes, s.AccrueInTx(ctx, tx, &installments[i], asOf, actorID))
	}

	if err := s.installmentRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit penalty accrual", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to commit penalty accrual", err)
	}

	return outcomes, nil
}
