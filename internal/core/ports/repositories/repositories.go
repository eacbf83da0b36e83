package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	AccountRepo   AccountRepository
	EntryRepo     EntryRepository
	PeriodRepo    PeriodRepository
	ClosingRepo   ClosingRepository
	TaxRateRepo   TaxRateRepository
	SaleRepo      SaleRepository
	BankRepo      BankStatementRepository
	ReportingRepo ReportingRepository
}
