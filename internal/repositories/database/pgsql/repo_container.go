package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	closingRepo := newPgxClosingRepository(dbPool)
	taxRateRepo := newPgxTaxRateRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool)
	bankRepo := newPgxBankStatementRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		EntryRepo:     entryRepo,
		PeriodRepo:    periodRepo,
		ClosingRepo:   closingRepo,
		TaxRateRepo:   taxRateRepo,
		SaleRepo:      saleRepo,
		BankRepo:      bankRepo,
		ReportingRepo: reportingRepo,
	}
}
