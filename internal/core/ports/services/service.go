package services

// ServiceContainer bundles every service facade for handler wiring.
type ServiceContainer struct {
	Loan     LoanSvcFacade
	Schedule ScheduleSvcFacade
	Penalty  PenaltySvcFacade
	Payment  PaymentSvcFacade
	Ledger   LedgerSvcFacade
	Receipts ReceiptDispatcher
}
