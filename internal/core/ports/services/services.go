package services

import (
	"context"
	"time"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	"github.com/shopledger/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ChartSvcFacade manages the chart of accounts.
type ChartSvcFacade interface {
	// InitChartOfAccounts seeds the default chart, skipping accounts that
	// already exist. Returns the number of accounts created.
	InitChartOfAccounts(ctx context.Context, userID string) (int, error)
	GetAccount(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// GetBalance derives the account balance from its lines using the
	// natural sign convention for the account type.
	GetBalance(ctx context.Context, code string, exerciseID *string) (decimal.Decimal, error)
}

// LedgerSvcFacade creates and reads journal entries.
type LedgerSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// PostingSvcFacade translates shop events into journal entries.
// Each PostX method returns nil, nil when the event amount is not positive.
type PostingSvcFacade interface {
	PostSale(ctx context.Context, sale domain.SaleEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error)
	PostSupply(ctx context.Context, supply domain.SupplyEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error)
	PostExpense(ctx context.Context, expense domain.ExpenseEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error)
	PostIncome(ctx context.Context, income domain.IncomeEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error)
	PostClientPayment(ctx context.Context, payment domain.ClientPaymentEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error)
	PostSupplierPayment(ctx context.Context, payment domain.SupplierPaymentEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error)
	// RecordDeferredVATForDaily posts the VAT collected entries for all
	// sales of the daily that have not had VAT recorded yet. Returns the
	// number of entries created.
	RecordDeferredVATForDaily(ctx context.Context, dailyID string, exerciseID string, userID string) (int, error)
	PendingAccounting(ctx context.Context) ([]domain.PendingSale, error)
}

// TaxSvcFacade manages VAT rates and the VAT declaration.
type TaxSvcFacade interface {
	CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest, userID string) (*domain.TaxRate, error)
	DefaultTaxRate(ctx context.Context) (*domain.TaxRate, error)
	// SplitTax decomposes a tax-inclusive amount into its base and tax
	// parts. A nil rate means no tax applies.
	SplitTax(amountTTC decimal.Decimal, rate *decimal.Decimal) (ht, tax decimal.Decimal)
	VATDeclaration(ctx context.Context, exerciseID *string, dateRange portsrepo.DateRange) (*domain.VATDeclaration, error)
}

// ReportingSvcFacade produces the financial reports.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, exerciseID *string) ([]domain.TrialBalanceRow, error)
	GeneralLedger(ctx context.Context, accountCode string, exerciseID *string) ([]domain.LedgerLine, error)
	IncomeStatement(ctx context.Context, exerciseID *string) (*domain.IncomeStatement, error)
	BalanceSheet(ctx context.Context, exerciseID *string) (*domain.BalanceSheet, error)
	AgedBalance(ctx context.Context, kind domain.AgedBalanceKind, asOf time.Time) (*domain.AgedBalance, error)
	ProductMargins(ctx context.Context, exerciseID *string) (*domain.ProductMarginReport, error)
}

// ReconciliationSvcFacade imports bank statements and matches them
// against ledger lines of the bank account.
type ReconciliationSvcFacade interface {
	ImportStatements(ctx context.Context, accountCode string, statements []domain.StatementImport, userID string) (int, error)
	Reconciliation(ctx context.Context, accountCode string, exerciseID *string, dateRange portsrepo.DateRange) (*domain.BankReconciliation, error)
	Reconcile(ctx context.Context, statementID string, ledgerLineID string, userID string) error
	Unreconcile(ctx context.Context, statementID string) error
}

// PeriodSvcFacade manages exercises and daily sessions.
type PeriodSvcFacade interface {
	GetOrCreateOpenExercise(ctx context.Context, userID string) (*domain.Exercise, error)
	GetOrCreateOpenDaily(ctx context.Context, userID string) (*domain.Daily, error)
	// CloseDaily stamps the daily end date and posts the deferred VAT
	// entries for its sales. Returns the number of VAT entries created.
	CloseDaily(ctx context.Context, dailyID string, userID string) (int, error)
}

// ClosingSvcFacade closes a fiscal exercise and opens its successor.
type ClosingSvcFacade interface {
	CloseExercise(ctx context.Context, exerciseID string, notes string, userID string) (*domain.ExerciseClosing, error)
	OpenNewExercise(ctx context.Context, closingID string, userID string) (*domain.Exercise, error)
}
