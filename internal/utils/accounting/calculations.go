package accounting

import (
	"fmt"

	"github.com/prestadero/lending-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// two decimal places for all persisted monetary components
const moneyScale = 2

// RoundMoney rounds a monetary amount to the persisted scale. Every
// intermediate waterfall component goes through this before being summed or
// stored, so rounding drift cannot compound across many small payments.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(moneyScale)
}

// SplitWaterfall splits a payment across the fixed penalty -> interest ->
// capital waterfall. Each step is capped by both the component's outstanding
// balance and the cash still unallocated, and rounded before the next step.
// The returned components always sum to the consumed amount.
func SplitWaterfall(amount, outstandingPenalty, outstandingInterest, outstandingCapital decimal.Decimal) (penalty, interest, capital decimal.Decimal) {
	remaining := RoundMoney(amount)

	penalty = decimal.Min(remaining, RoundMoney(outstandingPenalty))
	if penalty.IsNegative() {
		penalty = decimal.Zero
	}
	remaining = remaining.Sub(penalty)

	interest = decimal.Min(remaining, RoundMoney(outstandingInterest))
	if interest.IsNegative() {
		interest = decimal.Zero
	}
	remaining = remaining.Sub(interest)

	capital = decimal.Min(remaining, RoundMoney(outstandingCapital))
	if capital.IsNegative() {
		capital = decimal.Zero
	}

	return penalty, interest, capital
}

// ValidateEntriesBalance checks that a set of journal rows forms a valid
// double-entry event: at least two rows, each row carrying exactly one
// positive side, and total debits equal to total credits.
func ValidateEntriesBalance(entries []domain.JournalEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("journal event must have at least two entry rows")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range entries {
		hasDebit := e.Debit.IsPositive()
		hasCredit := e.Credit.IsPositive()
		if hasDebit == hasCredit {
			return fmt.Errorf("journal row %s must have exactly one of debit/credit set", e.EntryID)
		}
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("journal row %s has a negative amount", e.EntryID)
		}
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("journal entries do not balance: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}
	return nil
}
