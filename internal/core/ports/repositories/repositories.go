package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LoanRepo        LoanRepositoryFacade
	InstallmentRepo InstallmentRepositoryWithTx
	PaymentRepo     PaymentRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	ChartRepo       ChartRepositoryFacade
}
