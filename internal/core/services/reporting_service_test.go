package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_app/internal/core/services"
	"github.com/shopledger/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	mockEntryRepo     *MockEntryRepository
	service           portssvc.ReportingSvcFacade

	exerciseID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo, suite.mockEntryRepo)

	suite.exerciseID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_SignedBalances() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		row("571", domain.Asset, 10000, 4000),
		row("401", domain.Liability, 1000, 5000),
		row("601", domain.Expense, 3000, 0),
		row("701", domain.Income, 0, 8000),
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, &suite.exerciseID).Return(rows, nil).Once()

	got, err := suite.service.TrialBalance(ctx, &suite.exerciseID)

	suite.Require().NoError(err)
	suite.Require().Len(got, 4)
	suite.True(got[0].Balance.Equal(decimal.NewFromInt(6000)))  // asset: debit - credit
	suite.True(got[1].Balance.Equal(decimal.NewFromInt(4000)))  // liability: credit - debit
	suite.True(got[2].Balance.Equal(decimal.NewFromInt(3000)))  // expense: debit - credit
	suite.True(got[3].Balance.Equal(decimal.NewFromInt(8000)))  // income: credit - debit
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RunningBalance() {
	ctx := context.Background()
	cash := &domain.Account{AccountID: uuid.NewString(), Code: "571", AccountType: domain.Asset, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "571").Return(cash, nil).Once()

	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), AccountID: cash.AccountID, Debit: decimal.NewFromInt(1000), Credit: decimal.Zero},
		{LineID: uuid.NewString(), AccountID: cash.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(300)},
		{LineID: uuid.NewString(), AccountID: cash.AccountID, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
	}
	suite.mockEntryRepo.On("FindLinesByAccount", ctx, cash.AccountID, (*string)(nil)).Return(lines, nil).Once()

	ledger, err := suite.service.GeneralLedger(ctx, "571", nil)

	suite.Require().NoError(err)
	suite.Require().Len(ledger, 3)
	suite.True(ledger[0].RunningBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(ledger[1].RunningBalance.Equal(decimal.NewFromInt(700)))
	suite.True(ledger[2].RunningBalance.Equal(decimal.NewFromInt(1200)))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		row("571", domain.Asset, 10000, 4000),
		row("601", domain.Expense, 3000, 0),
		row("65", domain.Expense, 500, 0),
		// Nets to zero, must not appear as a charge line.
		row("62", domain.Expense, 400, 400),
		row("701", domain.Income, 0, 8000),
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, &suite.exerciseID).Return(rows, nil).Once()

	statement, err := suite.service.IncomeStatement(ctx, &suite.exerciseID)

	suite.Require().NoError(err)
	suite.Len(statement.Charges, 2)
	suite.Len(statement.Revenues, 1)
	suite.True(statement.TotalCharges.Equal(decimal.NewFromInt(3500)))
	suite.True(statement.TotalRevenues.Equal(decimal.NewFromInt(8000)))
	suite.True(statement.NetResult.Equal(decimal.NewFromInt(4500)))
	suite.True(statement.IsProfit)
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_Loss() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		row("601", domain.Expense, 9000, 0),
		row("701", domain.Income, 0, 7000),
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, &suite.exerciseID).Return(rows, nil).Once()

	statement, err := suite.service.IncomeStatement(ctx, &suite.exerciseID)

	suite.Require().NoError(err)
	suite.True(statement.NetResult.Equal(decimal.NewFromInt(-2000)))
	suite.False(statement.IsProfit)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_SidesMatch() {
	ctx := context.Background()
	// Cash sale of 8000 with 3000 of purchases paid: cash 5000, profit 5000.
	rows := []domain.TrialBalanceRow{
		row("571", domain.Asset, 8000, 3000),
		row("601", domain.Expense, 3000, 0),
		row("701", domain.Income, 0, 8000),
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, &suite.exerciseID).Return(rows, nil).Once()

	sheet, err := suite.service.BalanceSheet(ctx, &suite.exerciseID)

	suite.Require().NoError(err)
	suite.Len(sheet.TreasuryAssets, 1)
	suite.True(sheet.TotalTreasuryAssets.Equal(decimal.NewFromInt(5000)))
	suite.True(sheet.NetResult.Equal(decimal.NewFromInt(5000)))
	suite.True(sheet.TotalAssets.Equal(sheet.TotalLiabilities),
		"assets %s must equal liabilities %s", sheet.TotalAssets, sheet.TotalLiabilities)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Classification() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		row("31", domain.Asset, 4000, 1000),       // inventory
		row("411", domain.Asset, 2000, 500),       // receivables
		row("521", domain.Asset, 3000, 0),         // bank
		row("401", domain.Liability, 0, 1500),     // payables
		row("131", domain.Liability, 0, 6000),     // retained earnings
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, &suite.exerciseID).Return(rows, nil).Once()

	sheet, err := suite.service.BalanceSheet(ctx, &suite.exerciseID)

	suite.Require().NoError(err)
	suite.Len(sheet.CurrentAssets, 2)
	suite.Len(sheet.TreasuryAssets, 1)
	suite.Len(sheet.Payables, 1)
	suite.Len(sheet.Equity, 1)
	suite.True(sheet.TotalCurrentAssets.Equal(decimal.NewFromInt(4500)))
	suite.True(sheet.TotalAssets.Equal(decimal.NewFromInt(7500)))
	suite.True(sheet.TotalLiabilities.Equal(decimal.NewFromInt(7500)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_LossNotCarriedOnLiabilitySide() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		row("131", domain.Liability, 0, 2000), // retained earnings
		row("601", domain.Expense, 12000, 0),
		row("701", domain.Income, 0, 7000),
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, &suite.exerciseID).Return(rows, nil).Once()

	sheet, err := suite.service.BalanceSheet(ctx, &suite.exerciseID)

	suite.Require().NoError(err)
	suite.True(sheet.NetResult.Equal(decimal.NewFromInt(-5000)))
	suite.True(sheet.TotalEquity.Equal(decimal.NewFromInt(2000)))
	// Only a profit folds into the liability side.
	suite.True(sheet.TotalLiabilities.Equal(decimal.NewFromInt(2000)),
		"got %s", sheet.TotalLiabilities)
}

func (suite *ReportingServiceTestSuite) TestAgedBalance_Clients() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	sales := []domain.CreditSaleOutstanding{
		{SaleID: 1, ClientName: "Mballa", SaleDate: asOf.AddDate(0, 0, -10), AmountRemaining: decimal.NewFromInt(1000)},
		{SaleID: 2, ClientName: "Ngo", SaleDate: asOf.AddDate(0, 0, -45), AmountRemaining: decimal.NewFromInt(2000)},
		{SaleID: 3, ClientName: "Fouda", SaleDate: asOf.AddDate(0, 0, -120), AmountRemaining: decimal.NewFromInt(500)},
	}
	suite.mockReportingRepo.On("GetUnpaidCreditSales", ctx).Return(sales, nil).Once()

	report, err := suite.service.AgedBalance(ctx, domain.AgedClients, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Items, 3)
	suite.True(report.Buckets["0-30"].Equal(decimal.NewFromInt(1000)))
	suite.True(report.Buckets["31-60"].Equal(decimal.NewFromInt(2000)))
	suite.True(report.Buckets["61-90"].IsZero())
	suite.True(report.Buckets["90+"].Equal(decimal.NewFromInt(500)))
	suite.True(report.GrandTotal.Equal(decimal.NewFromInt(3500)))
	suite.Equal("Vente #1", report.Items[0].Reference)
}

func (suite *ReportingServiceTestSuite) TestAgedBalance_SuppliersGrandTotalMatchesBuckets() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suppliers := &domain.Account{AccountID: uuid.NewString(), Code: accounting.CodeSuppliers, AccountType: domain.Liability, IsActive: true}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, accounting.CodeSuppliers).Return(suppliers, nil).Once()

	// One invoice and one payment: only the credit is aged, and the
	// grand total is the sum of the buckets.
	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), Credit: decimal.NewFromInt(5000), Debit: decimal.Zero,
			EntryReference: "AC-20260110-001", EntryDate: asOf.AddDate(0, 0, -50)},
		{LineID: uuid.NewString(), Credit: decimal.Zero, Debit: decimal.NewFromInt(2000),
			EntryReference: "CA-20260210-002", EntryDate: asOf.AddDate(0, 0, -19)},
	}
	suite.mockEntryRepo.On("FindLinesByAccount", ctx, suppliers.AccountID, (*string)(nil)).Return(lines, nil).Once()

	report, err := suite.service.AgedBalance(ctx, domain.AgedSuppliers, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Items, 1)
	suite.Equal("31-60", report.Items[0].Bucket)
	suite.True(report.Buckets["31-60"].Equal(decimal.NewFromInt(5000)))
	suite.True(report.GrandTotal.Equal(decimal.NewFromInt(5000)))

	bucketSum := decimal.Zero
	for _, total := range report.Buckets {
		bucketSum = bucketSum.Add(total)
	}
	suite.True(report.GrandTotal.Equal(bucketSum))
}

func (suite *ReportingServiceTestSuite) TestProductMargins() {
	ctx := context.Background()
	items := []domain.ProductMargin{
		{ProductID: 1, ProductName: "Savon", QtySold: decimal.NewFromInt(10), Revenue: decimal.NewFromInt(5000), UnitCost: decimal.NewFromInt(300)},
		{ProductID: 2, ProductName: "Huile", QtySold: decimal.NewFromInt(4), Revenue: decimal.NewFromInt(8000), UnitCost: decimal.NewFromInt(1200)},
	}
	suite.mockReportingRepo.On("GetProductSales", ctx, (*string)(nil)).Return(items, nil).Once()

	report, err := suite.service.ProductMargins(ctx, nil)

	suite.Require().NoError(err)
	suite.Require().Len(report.Items, 2)

	// Huile: margin 8000 - 4800 = 3200, sorts first.
	suite.Equal("Huile", report.Items[0].ProductName)
	suite.True(report.Items[0].Margin.Equal(decimal.NewFromInt(3200)))
	suite.True(report.Items[0].MarginPct.Equal(decimal.NewFromInt(40)))

	// Savon: margin 5000 - 3000 = 2000.
	suite.Equal("Savon", report.Items[1].ProductName)
	suite.True(report.Items[1].Margin.Equal(decimal.NewFromInt(2000)))

	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(13000)))
	suite.True(report.TotalCost.Equal(decimal.NewFromInt(7800)))
	suite.True(report.TotalMargin.Equal(decimal.NewFromInt(5200)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
