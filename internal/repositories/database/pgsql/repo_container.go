package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/prestadero/lending-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	loanRepo := newPgxLoanRepository(dbPool)
	installmentRepo := newPgxInstallmentRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	chartRepo := newPgxChartRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LoanRepo:        loanRepo,
		InstallmentRepo: installmentRepo,
		PaymentRepo:     paymentRepo,
		LedgerRepo:      ledgerRepo,
		ChartRepo:       chartRepo,
	}
}
