package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prestadero/lending-backend/internal/core/domain"
)

// PenaltySvcFacade defines late-fee accrual operations.
type PenaltySvcFacade interface {
	// AccrueLoanPenalties walks all pending installments of a loan and applies
	// any penalty due as of the given time. Each installment yields its own
	// outcome; a failure on one does not stop the rest.
	AccrueLoanPenalties(ctx context.Context, loanID string, asOf time.Time, actorID string) ([]domain.AccrualOutcome, error)

	// AccrueInTx applies at most one day's penalty to a single installment
	// inside an already open transaction. It never returns an error; failures
	// are reported through the outcome so callers can proceed without the
	// penalty rather than abort.
	AccrueInTx(ctx context.Context, tx pgx.Tx, installment *domain.Installment, asOf time.Time, actorID string) domain.AccrualOutcome
}
