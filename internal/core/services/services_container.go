package services

import (
	"github.com/prestadero/lending-backend/internal/core/domain"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, receipts portssvc.ReceiptDispatcher) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}
	container.Receipts = receipts

	// Penalty service first since the payment path depends on it
	container.Penalty = NewPenaltyService(repos.InstallmentRepo, repos.LoanRepo)

	container.Schedule = NewScheduleService(repos.InstallmentRepo)
	container.Loan = NewLoanService(repos.LoanRepo, container.Schedule)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.ChartRepo)

	container.Payment = NewPaymentService(
		repos.LoanRepo,
		repos.InstallmentRepo,
		repos.PaymentRepo,
		repos.LedgerRepo,
		container.Penalty,
		receipts,
		domain.DefaultAccountCodes,
		cfg.SingleInstallmentPerPayment,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PaymentSvcFacade  = (*paymentService)(nil)
	_ portssvc.PenaltySvcFacade  = (*penaltyService)(nil)
	_ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)
)
