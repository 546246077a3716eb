package domain

// AccountType defines the fundamental accounting type of a chart account.
type AccountType string

const (
	Asset   AccountType = "ASSET"
	Income  AccountType = "INCOME"
	Expense AccountType = "EXPENSE"
)

// ChartAccount is one row of the chart of accounts. The chart is seeded once
// and read-only to the core.
type ChartAccount struct {
	Code     string      `json:"code"`
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	Category string      `json:"category"`
}

// AccountCodes centralizes the chart codes the ledger poster writes to.
// Injected into the poster so call sites never carry code literals.
type AccountCodes struct {
	Cash           string
	Bank           string
	Receivables    string
	InterestIncome string
	PenaltyIncome  string
}

// DefaultAccountCodes is the seeded chart used by the posting engine.
var DefaultAccountCodes = AccountCodes{
	Cash:           "1101",
	Bank:           "1102",
	Receivables:    "1103",
	InterestIncome: "4100",
	PenaltyIncome:  "4101",
}

// CashAccountFor selects the cash or bank account a payment method settles
// into: efectivo goes to the cash box, transferencia and tarjeta to the bank.
func (c AccountCodes) CashAccountFor(method PaymentMethod) string {
	if method == MethodEfectivo {
		return c.Cash
	}
	return c.Bank
}
