package services

// ServiceContainer holds all services used by the application
type ServiceContainer struct {
	Chart          ChartSvcFacade
	Ledger         LedgerSvcFacade
	Posting        PostingSvcFacade
	Tax            TaxSvcFacade
	Reporting      ReportingSvcFacade
	Reconciliation ReconciliationSvcFacade
	Period         PeriodSvcFacade
	Closing        ClosingSvcFacade
}
