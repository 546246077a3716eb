package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/prestadero/lending-backend/internal/apperrors"
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/dto"
	"github.com/prestadero/lending-backend/internal/middleware"
	"github.com/prestadero/lending-backend/internal/utils/accounting"
)

// paymentService applies cash against a loan's installments: it locks the
// pending rows, accrues any penalty due, splits the cash through the
// penalty/interest/capital waterfall oldest week first, and posts a balanced
// journal plus the legacy accounting rows, all in one transaction.
type paymentService struct {
	loanRepo        portsrepo.LoanRepositoryFacade
	installmentRepo portsrepo.InstallmentRepositoryWithTx
	paymentRepo     portsrepo.PaymentRepositoryFacade
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	penaltySvc      portssvc.PenaltySvcFacade
	receipts        portssvc.ReceiptDispatcher
	codes           domain.AccountCodes

	// singleInstallmentPerPayment stops allocation after the first installment
	// that consumes cash. The default mirrors the collections workflow of one
	// visit settling one week; turning it off lets one payment pay ahead.
	singleInstallmentPerPayment bool
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	loanRepo portsrepo.LoanRepositoryFacade,
	installmentRepo portsrepo.InstallmentRepositoryWithTx,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	penaltySvc portssvc.PenaltySvcFacade,
	receipts portssvc.ReceiptDispatcher,
	codes domain.AccountCodes,
	singleInstallmentPerPayment bool,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		loanRepo:                    loanRepo,
		installmentRepo:             installmentRepo,
		paymentRepo:                 paymentRepo,
		ledgerRepo:                  ledgerRepo,
		penaltySvc:                  penaltySvc,
		receipts:                    receipts,
		codes:                       codes,
		singleInstallmentPerPayment: singleInstallmentPerPayment,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// ApplyPayment validates, allocates and posts a payment. Everything between
// the installment row locks and the loan status flip happens inside one
// transaction; any posting failure rolls the whole payment back.
func (s *paymentService) ApplyPayment(ctx context.Context, loanID string, req dto.ApplyPaymentRequest, actorID string) (*dto.ApplyPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// --- Validation, before any state change ---
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.Method)
	}

	// --- Preconditions ---
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.AcceptsPayments() {
		return nil, fmt.Errorf("%w: loan %s in status %s does not accept payments", apperrors.ErrPrecondition, loanID, loan.Status)
	}

	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	tx, err := s.installmentRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin payment transaction", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer s.installmentRepo.Rollback(ctx, tx)

	installments, err := s.installmentRepo.FindPendingByLoanIDForUpdate(ctx, tx, loanID)
	if err != nil {
		logger.Error("Failed to lock pending installments", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, err
	}
	if len(installments) == 0 {
		return nil, fmt.Errorf("%w: all installments of loan %s are already paid", apperrors.ErrPrecondition, loanID)
	}

	now := time.Now().UTC()
	remaining := accounting.RoundMoney(req.Amount)
	result := domain.AllocationResult{Remainder: decimal.Zero}
	var firstPaymentID string

	for i := range installments {
		if !remaining.IsPositive() {
			break
		}
		inst := &installments[i]

		// Penalty accrual is fail-open: a Failed outcome is logged and the
		// payment proceeds without the penalty.
		outcome := s.penaltySvc.AccrueInTx(ctx, tx, inst, asOf, actorID)
		result.Accruals = append(result.Accruals, outcome)
		if outcome.Accrued() {
			logger.Info("Penalty accrued during payment",
				slog.Int("week_number", inst.WeekNumber),
				slog.String("penalty_delta", outcome.PenaltyDelta.String()),
			)
		}

		alreadyPaid, err := s.paymentRepo.SumPaymentsForWeekInTx(ctx, tx, loanID, inst.WeekNumber)
		if err != nil {
			logger.Error("Failed to sum prior payments", slog.String("loan_id", loanID), slog.Int("week_number", inst.WeekNumber), slog.String("error", err.Error()))
			return nil, apperrors.NewAppError(500, "failed to compute prior payments", err)
		}

		totalDue := inst.TotalDue()
		remainingDue := totalDue.Sub(alreadyPaid)
		if !remainingDue.IsPositive() {
			// Settled by prior payments; skip without consuming cash.
			continue
		}

		paymentNow := decimal.Min(remaining, remainingDue)
		penalty, interest, capital := accounting.SplitWaterfall(
			paymentNow,
			inst.OutstandingPenalty(),
			inst.OutstandingInterest(),
			inst.OutstandingCapital(),
		)
		paymentNow = penalty.Add(interest).Add(capital)
		if !paymentNow.IsPositive() {
			continue
		}

		newTotalPaid := inst.TotalPaid().Add(paymentNow)
		settles := newTotalPaid.GreaterThanOrEqual(totalDue)
		status := domain.InstallmentPending
		if settles {
			status = domain.InstallmentPaid
		}

		paymentID, err := s.postAllocation(ctx, tx, loan, inst, method, req.StoreID, paymentNow, penalty, interest, capital, status, asOf, actorID, now)
		if err != nil {
			return nil, err
		}
		if firstPaymentID == "" {
			firstPaymentID = paymentID
		}

		inst.PenaltyPaid = inst.PenaltyPaid.Add(penalty)
		inst.InterestPaid = inst.InterestPaid.Add(interest)
		inst.CapitalPaid = inst.CapitalPaid.Add(capital)
		inst.Status = status

		result.PerInstallment = append(result.PerInstallment, domain.InstallmentAllocation{
			InstallmentID: inst.InstallmentID,
			WeekNumber:    inst.WeekNumber,
			PaymentAmount: paymentNow,
			PenaltyPaid:   penalty,
			InterestPaid:  interest,
			CapitalPaid:   capital,
			SettlesWeek:   settles,
		})
		if settles {
			result.PaidWeeks = append(result.PaidWeeks, inst.WeekNumber)
		}
		remaining = remaining.Sub(paymentNow)

		if s.singleInstallmentPerPayment {
			break
		}
	}

	if len(result.PerInstallment) == 0 {
		return nil, fmt.Errorf("%w: no unpaid installments to apply payment to", apperrors.ErrPrecondition)
	}

	// Leftover cash stays unapplied and is reported back, unless the caller
	// asked for an unattributed principal reduction.
	if remaining.IsPositive() && req.ApplyExtraTo != nil && *req.ApplyExtraTo == "capital" {
		if err := s.postExtraToCapital(ctx, tx, loan, method, req.StoreID, remaining, asOf, actorID, now); err != nil {
			return nil, err
		}
		remaining = decimal.Zero
	}
	result.Remainder = remaining

	// Flip the loan once nothing pending remains, in the same transaction.
	pending, err := s.installmentRepo.CountPendingInTx(ctx, tx, loanID)
	if err != nil {
		logger.Error("Failed to count pending installments", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to count pending installments", err)
	}
	if pending == 0 {
		if err := s.loanRepo.UpdateLoanStatusInTx(ctx, tx, loanID, domain.LoanPaidOff, actorID, now); err != nil {
			logger.Error("Failed to mark loan paid off", slog.String("loan_id", loanID), slog.String("error", err.Error()))
			return nil, apperrors.NewAppError(500, "failed to mark loan paid off", err)
		}
	}

	if err := s.installmentRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit payment", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to commit payment", err)
	}

	totalApplied := req.Amount.Sub(remaining)
	logger.Info("Payment applied",
		slog.String("loan_id", loanID),
		slog.String("payment_id", firstPaymentID),
		slog.String("applied", totalApplied.String()),
		slog.String("remaining", remaining.String()),
		slog.Any("paid_weeks", result.PaidWeeks),
	)

	// Receipt dispatch is best effort and must never fail the payment.
	receiptGenerated := false
	if s.receipts != nil {
		receiptGenerated = s.receipts.Dispatch(ctx, dto.PaymentReceipt{
			PaymentID:     firstPaymentID,
			LoanID:        loanID,
			Amount:        totalApplied,
			Method:        string(method),
			PaidWeeks:     result.PaidWeeks,
			Remaining:     remaining,
			PaymentDate:   asOf,
			AmountDisplay: totalApplied.StringFixed(2),
		})
	}

	return &dto.ApplyPaymentResponse{
		PaymentID:            firstPaymentID,
		PaidInstallmentWeeks: result.PaidWeeks,
		Remaining:            result.Remainder,
		ReceiptGenerated:     receiptGenerated,
		Allocations:          dto.ToAllocationResponses(result.PerInstallment),
	}, nil
}

// ListPaymentsByLoan returns the payment history of a loan, oldest first.
func (s *paymentService) ListPaymentsByLoan(ctx context.Context, loanID string) ([]domain.Payment, error) {
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListPaymentsByLoanID(ctx, loanID)
}

// postAllocation writes the Payment row, the balanced journal rows, the legacy
// accounting rows and the installment paid-column update for one allocation.
// Runs inside the caller's transaction; any error aborts the payment.
func (s *paymentService) postAllocation(
	ctx context.Context,
	tx pgx.Tx,
	loan *domain.Loan,
	inst *domain.Installment,
	method domain.PaymentMethod,
	storeID *string,
	paymentNow, penalty, interest, capital decimal.Decimal,
	status domain.InstallmentStatus,
	asOf time.Time,
	actorID string,
	now time.Time,
) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		LoanID:          loan.LoanID,
		Amount:          paymentNow,
		Method:          method,
		InstallmentWeek: inst.WeekNumber,
		PaymentDate:     asOf,
		StoreID:         storeID,
		AuditFields:     audit,
	}
	if err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		logger.Error("Failed to save payment row", slog.String("loan_id", loan.LoanID), slog.String("error", err.Error()))
		return "", apperrors.NewAppError(500, "failed to save payment", err)
	}

	description := fmt.Sprintf("Payment week %d loan %s", inst.WeekNumber, loan.LoanID)

	entries := []domain.JournalEntry{{
		EntryID:     uuid.NewString(),
		EntryDate:   asOf,
		Description: description,
		AccountCode: s.codes.CashAccountFor(method),
		Debit:       paymentNow,
		Credit:      decimal.Zero,
		SourceType:  domain.SourcePayment,
		SourceID:    payment.PaymentID,
		AuditFields: audit,
	}}
	// Zero components write no rows.
	creditLegs := []struct {
		account string
		amount  decimal.Decimal
	}{
		{s.codes.Receivables, capital},
		{s.codes.InterestIncome, interest},
		{s.codes.PenaltyIncome, penalty},
	}
	for _, leg := range creditLegs {
		if !leg.amount.IsPositive() {
			continue
		}
		entries = append(entries, domain.JournalEntry{
			EntryID:     uuid.NewString(),
			EntryDate:   asOf,
			Description: description,
			AccountCode: leg.account,
			Debit:       decimal.Zero,
			Credit:      leg.amount,
			SourceType:  domain.SourcePayment,
			SourceID:    payment.PaymentID,
			AuditFields: audit,
		})
	}

	if err := accounting.ValidateEntriesBalance(entries); err != nil {
		logger.Error("Journal rows do not balance", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return "", apperrors.NewAppError(500, "journal entries do not balance", err)
	}
	if err := s.ledgerRepo.SaveJournalEntriesInTx(ctx, tx, entries); err != nil {
		logger.Error("Failed to save journal rows", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return "", apperrors.NewAppError(500, "failed to save journal entries", err)
	}

	accEntries := []domain.AccountingEntry{{
		AccountingEntryID: uuid.NewString(),
		LoanID:            loan.LoanID,
		EntryType:         domain.EntryCash,
		Amount:            paymentNow,
		Description:       description,
		SourceType:        domain.SourcePayment,
		SourceID:          payment.PaymentID,
		AuditFields:       audit,
	}}
	components := []struct {
		entryType domain.EntryType
		amount    decimal.Decimal
	}{
		{domain.EntryPenaltyPaid, penalty},
		{domain.EntryInterestPaid, interest},
		{domain.EntryCapitalPaid, capital},
	}
	for _, c := range components {
		if !c.amount.IsPositive() {
			continue
		}
		accEntries = append(accEntries, domain.AccountingEntry{
			AccountingEntryID: uuid.NewString(),
			LoanID:            loan.LoanID,
			EntryType:         c.entryType,
			Amount:            c.amount,
			Description:       description,
			SourceType:        domain.SourcePayment,
			SourceID:          payment.PaymentID,
			AuditFields:       audit,
		})
	}
	if err := s.ledgerRepo.SaveAccountingEntriesInTx(ctx, tx, accEntries); err != nil {
		logger.Error("Failed to save accounting rows", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return "", apperrors.NewAppError(500, "failed to save accounting entries", err)
	}

	if err := s.installmentRepo.ApplyCollectionInTx(ctx, tx, inst.InstallmentID, penalty, interest, capital, status, actorID, now); err != nil {
		logger.Error("Failed to update installment paid columns", slog.String("installment_id", inst.InstallmentID), slog.String("error", err.Error()))
		return "", apperrors.NewAppError(500, "failed to update installment", err)
	}

	return payment.PaymentID, nil
}

// postExtraToCapital posts leftover cash as an unattributed principal
// reduction: debit cash/bank, credit receivables, with its own Payment row
// attributed to week 0.
func (s *paymentService) postExtraToCapital(
	ctx context.Context,
	tx pgx.Tx,
	loan *domain.Loan,
	method domain.PaymentMethod,
	storeID *string,
	amount decimal.Decimal,
	asOf time.Time,
	actorID string,
	now time.Time,
) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		LoanID:          loan.LoanID,
		Amount:          amount,
		Method:          method,
		InstallmentWeek: 0, // not attributed to any scheduled week
		PaymentDate:     asOf,
		StoreID:         storeID,
		AuditFields:     audit,
	}
	if err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		logger.Error("Failed to save extra-capital payment row", slog.String("loan_id", loan.LoanID), slog.String("error", err.Error()))
		return apperrors.NewAppError(500, "failed to save payment", err)
	}

	description := fmt.Sprintf("Principal reduction loan %s", loan.LoanID)
	entries := []domain.JournalEntry{
		{
			EntryID:     uuid.NewString(),
			EntryDate:   asOf,
			Description: description,
			AccountCode: s.codes.CashAccountFor(method),
			Debit:       amount,
			Credit:      decimal.Zero,
			SourceType:  domain.SourcePayment,
			SourceID:    payment.PaymentID,
			AuditFields: audit,
		},
		{
			EntryID:     uuid.NewString(),
			EntryDate:   asOf,
			Description: description,
			AccountCode: s.codes.Receivables,
			Debit:       decimal.Zero,
			Credit:      amount,
			SourceType:  domain.SourcePayment,
			SourceID:    payment.PaymentID,
			AuditFields: audit,
		},
	}
	if err := accounting.ValidateEntriesBalance(entries); err != nil {
		return apperrors.NewAppError(500, "journal entries do not balance", err)
	}
	if err := s.ledgerRepo.SaveJournalEntriesInTx(ctx, tx, entries); err != nil {
		logger.Error("Failed to save extra-capital journal rows", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return apperrors.NewAppError(500, "failed to save journal entries", err)
	}

	accEntries := []domain.AccountingEntry{
		{
			AccountingEntryID: uuid.NewString(),
			LoanID:            loan.LoanID,
			EntryType:         domain.EntryCash,
			Amount:            amount,
			Description:       description,
			SourceType:        domain.SourcePayment,
			SourceID:          payment.PaymentID,
			AuditFields:       audit,
		},
		{
			AccountingEntryID: uuid.NewString(),
			LoanID:            loan.LoanID,
			EntryType:         domain.EntryCapitalPaid,
			Amount:            amount,
			Description:       description,
			SourceType:        domain.SourcePayment,
			SourceID:          payment.PaymentID,
			AuditFields:       audit,
		},
	}
	if err := s.ledgerRepo.SaveAccountingEntriesInTx(ctx, tx, accEntries); err != nil {
		logger.Error("Failed to save extra-capital accounting rows", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return apperrors.NewAppError(500, "failed to save accounting entries", err)
	}

	return nil
}
