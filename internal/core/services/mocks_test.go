package services_test

import (
	"context"
	"time"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SumAccountLines(ctx context.Context, accountID string, exerciseID *string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, exerciseID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockAccountRepository) SaveAccountIfAbsent(ctx context.Context, account domain.Account) (bool, error) {
	args := m.Called(ctx, account)
	return args.Bool(0), args.Error(1)
}

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepository = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) CreateSaleEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, vatSettled bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines, vatSettled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) CreateSaleVATEntry(ctx context.Context, saleID int64, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, bool, error) {
	args := m.Called(ctx, saleID, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Bool(1), args.Error(2)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByAccount(ctx context.Context, accountID string, exerciseID *string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, accountID, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepository = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) GetOrCreateOpenExercise(ctx context.Context, userID string) (*domain.Exercise, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockPeriodRepository) FindExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockPeriodRepository) GetOrCreateOpenDaily(ctx context.Context, exerciseID string, userID string) (*domain.Daily, error) {
	args := m.Called(ctx, exerciseID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Daily), args.Error(1)
}

func (m *MockPeriodRepository) FindDailyByID(ctx context.Context, dailyID string) (*domain.Daily, error) {
	args := m.Called(ctx, dailyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Daily), args.Error(1)
}

func (m *MockPeriodRepository) CloseDaily(ctx context.Context, dailyID string, end time.Time, userID string) error {
	args := m.Called(ctx, dailyID, end, userID)
	return args.Error(0)
}

// --- Mock ClosingRepository ---

type MockClosingRepository struct {
	mock.Mock
}

var _ portsrepo.ClosingRepository = (*MockClosingRepository)(nil)

func (m *MockClosingRepository) CloseExercise(ctx context.Context, exerciseID string, end time.Time, build portsrepo.ClosingLineBuilder) (*domain.ExerciseClosing, error) {
	args := m.Called(ctx, exerciseID, end, build)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExerciseClosing), args.Error(1)
}

func (m *MockClosingRepository) OpenNewExercise(ctx context.Context, closingID string, newExercise domain.Exercise, build portsrepo.OpeningLineBuilder) (*domain.Exercise, error) {
	args := m.Called(ctx, closingID, newExercise, build)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockClosingRepository) FindClosingByID(ctx context.Context, closingID string) (*domain.ExerciseClosing, error) {
	args := m.Called(ctx, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExerciseClosing), args.Error(1)
}

// --- Mock TaxRateRepository ---

type MockTaxRateRepository struct {
	mock.Mock
}

var _ portsrepo.TaxRateRepository = (*MockTaxRateRepository)(nil)

func (m *MockTaxRateRepository) SaveTaxRate(ctx context.Context, rate domain.TaxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockTaxRateRepository) FindDefaultTaxRate(ctx context.Context) (*domain.TaxRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) ListActiveTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxRate), args.Error(1)
}

// --- Mock SaleRepository ---

type MockSaleRepository struct {
	mock.Mock
}

var _ portsrepo.SaleRepository = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) FindVATPendingSales(ctx context.Context, dailyID string) ([]domain.VATPendingSale, error) {
	args := m.Called(ctx, dailyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATPendingSale), args.Error(1)
}

func (m *MockSaleRepository) MarkVATRecorded(ctx context.Context, saleID int64) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

func (m *MockSaleRepository) ListPendingAccounting(ctx context.Context) ([]domain.PendingSale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingSale), args.Error(1)
}

// --- Mock BankStatementRepository ---

type MockBankStatementRepository struct {
	mock.Mock
}

var _ portsrepo.BankStatementRepository = (*MockBankStatementRepository)(nil)

func (m *MockBankStatementRepository) BulkInsertStatements(ctx context.Context, statements []domain.BankStatement) (int, error) {
	args := m.Called(ctx, statements)
	return args.Int(0), args.Error(1)
}

func (m *MockBankStatementRepository) FindStatementsByAccount(ctx context.Context, accountID string, dateRange portsrepo.DateRange) ([]domain.BankStatement, error) {
	args := m.Called(ctx, accountID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankStatement), args.Error(1)
}

func (m *MockBankStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	args := m.Called(ctx, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankStatement), args.Error(1)
}

func (m *MockBankStatementRepository) MarkReconciled(ctx context.Context, statementID string, ledgerLineID string, userID string, at time.Time) error {
	args := m.Called(ctx, statementID, ledgerLineID, userID, at)
	return args.Error(0)
}

func (m *MockBankStatementRepository) MarkUnreconciled(ctx context.Context, statementID string) error {
	args := m.Called(ctx, statementID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, exerciseID *string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetUnpaidCreditSales(ctx context.Context) ([]domain.CreditSaleOutstanding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditSaleOutstanding), args.Error(1)
}

func (m *MockReportingRepository) GetProductSales(ctx context.Context, exerciseID *string) ([]domain.ProductMargin, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductMargin), args.Error(1)
}

func (m *MockReportingRepository) GetVATTotals(ctx context.Context, exerciseID *string, dateRange portsrepo.DateRange) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, exerciseID, dateRange)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetVATMonthly(ctx context.Context, exerciseID *string, dateRange portsrepo.DateRange) ([]domain.VATMonth, error) {
	args := m.Called(ctx, exerciseID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATMonth), args.Error(1)
}
