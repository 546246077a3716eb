package services

import (
	"context"
	"time"

	"github.com/prestadero/lending-backend/internal/core/domain"
)

// ScheduleSvcFacade defines installment schedule operations.
type ScheduleSvcFacade interface {
	// GenerateSchedule builds and persists the weekly installment plan for a loan.
	GenerateSchedule(ctx context.Context, loan *domain.Loan, actorID string) ([]domain.Installment, error)
	// GetScheduleByLoanID returns the full schedule for a loan ordered by week.
	GetScheduleByLoanID(ctx context.Context, loanID string, asOf time.Time) ([]domain.Installment, error)
}
