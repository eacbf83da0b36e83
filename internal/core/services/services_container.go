package services

import (
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Chart = NewChartService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.EntryRepo, repos.AccountRepo)
	container.Posting = NewPostingService(repos.EntryRepo, repos.AccountRepo, repos.SaleRepo, repos.TaxRateRepo)
	container.Tax = NewTaxService(repos.TaxRateRepo, repos.ReportingRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.EntryRepo)
	container.Reconciliation = NewReconciliationService(repos.BankRepo, repos.AccountRepo, repos.EntryRepo)

	// Period closing triggers deferred VAT through the posting service.
	container.Period = NewPeriodService(repos.PeriodRepo, container.Posting)
	container.Closing = NewClosingService(repos.ClosingRepo, repos.PeriodRepo, repos.AccountRepo)

	return container
}
