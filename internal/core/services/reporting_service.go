package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	entryRepo     portsrepo.EntryRepository
}

// NewReportingService creates the financial reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	accountRepo portsrepo.AccountReader,
	entryRepo portsrepo.EntryRepository,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		entryRepo:     entryRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance returns every account with activity, each with its signed
// balance under the account-type convention.
func (s *reportingService) TrialBalance(ctx context.Context, exerciseID *string) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetAccountActivity(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		balance, err := accounting.NaturalBalance(rows[i].AccountType, rows[i].TotalDebit, rows[i].TotalCredit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", rows[i].AccountCode, err)
		}
		rows[i].Balance = balance
	}
	return rows, nil
}

// GeneralLedger returns the account's lines in chronological order with a
// cumulative running balance.
func (s *reportingService) GeneralLedger(ctx context.Context, accountCode string, exerciseID *string) ([]domain.LedgerLine, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, err
	}
	lines, err := s.entryRepo.FindLinesByAccount(ctx, account.AccountID, exerciseID)
	if err != nil {
		return nil, err
	}

	running := decimal.Zero
	ledger := make([]domain.LedgerLine, 0, len(lines))
	for _, line := range lines {
		delta, err := accounting.NaturalBalance(account.AccountType, line.Debit, line.Credit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", accountCode, err)
		}
		running = running.Add(delta)
		ledger = append(ledger, domain.LedgerLine{Line: line, RunningBalance: running})
	}
	return ledger, nil
}

// IncomeStatement splits the nominal accounts into charges and revenues
// and nets them into the period result.
func (s *reportingService) IncomeStatement(ctx context.Context, exerciseID *string) (*domain.IncomeStatement, error) {
	rows, err := s.TrialBalance(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	statement := &domain.IncomeStatement{
		Charges:       []domain.TrialBalanceRow{},
		Revenues:      []domain.TrialBalanceRow{},
		TotalCharges:  decimal.Zero,
		TotalRevenues: decimal.Zero,
	}
	for _, row := range rows {
		if row.Balance.IsZero() {
			continue
		}
		switch {
		case accounting.IsExpenseCode(row.AccountCode):
			statement.Charges = append(statement.Charges, row)
			statement.TotalCharges = statement.TotalCharges.Add(row.Balance)
		case accounting.IsIncomeCode(row.AccountCode):
			statement.Revenues = append(statement.Revenues, row)
			statement.TotalRevenues = statement.TotalRevenues.Add(row.Balance)
		}
	}
	statement.NetResult = statement.TotalRevenues.Sub(statement.TotalCharges)
	statement.IsProfit = statement.NetResult.IsPositive() || statement.NetResult.IsZero()
	return statement, nil
}

// BalanceSheet groups the carried accounts by class and folds the period
// result into the liability side, so both sides always match.
func (s *reportingService) BalanceSheet(ctx context.Context, exerciseID *string) (*domain.BalanceSheet, error) {
	rows, err := s.TrialBalance(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	sheet := &domain.BalanceSheet{
		FixedAssets:       []domain.BalanceSheetItem{},
		CurrentAssets:     []domain.BalanceSheetItem{},
		TreasuryAssets:    []domain.BalanceSheetItem{},
		Equity:            []domain.BalanceSheetItem{},
		Payables:          []domain.BalanceSheetItem{},
		TreasuryLiability: []domain.BalanceSheetItem{},
	}
	netResult := decimal.Zero

	for _, row := range rows {
		if accounting.IsNominal(row.AccountCode) {
			// Nominal accounts feed the result line, not the sheet body.
			if row.AccountType == domain.Expense {
				netResult = netResult.Sub(row.Balance)
			} else {
				netResult = netResult.Add(row.Balance)
			}
			continue
		}
		if row.Balance.IsZero() {
			continue
		}

		item := domain.BalanceSheetItem{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Balance:     row.Balance.Abs(),
		}
		class := row.AccountCode[:1]
		switch {
		case row.AccountType == domain.Asset && class == "2":
			sheet.FixedAssets = append(sheet.FixedAssets, item)
			sheet.TotalFixedAssets = sheet.TotalFixedAssets.Add(item.Balance)
		case row.AccountType == domain.Asset && (class == "3" || class == "4" || class == "1"):
			sheet.CurrentAssets = append(sheet.CurrentAssets, item)
			sheet.TotalCurrentAssets = sheet.TotalCurrentAssets.Add(item.Balance)
		case row.AccountType == domain.Asset && class == "5":
			sheet.TreasuryAssets = append(sheet.TreasuryAssets, item)
			sheet.TotalTreasuryAssets = sheet.TotalTreasuryAssets.Add(item.Balance)
		case row.AccountType == domain.Liability && class == "1":
			sheet.Equity = append(sheet.Equity, item)
			sheet.TotalEquity = sheet.TotalEquity.Add(item.Balance)
		case row.AccountType == domain.Liability && class == "4":
			sheet.Payables = append(sheet.Payables, item)
			sheet.TotalPayables = sheet.TotalPayables.Add(item.Balance)
		case row.AccountType == domain.Liability && class == "5":
			sheet.TreasuryLiability = append(sheet.TreasuryLiability, item)
			sheet.TotalTreasuryLiability = sheet.TotalTreasuryLiability.Add(item.Balance)
		}
	}

	sheet.NetResult = netResult
	sheet.TotalAssets = sheet.TotalFixedAssets.Add(sheet.TotalCurrentAssets).Add(sheet.TotalTreasuryAssets)
	// A loss is not carried on the liability side; only a profit folds in.
	result := netResult
	if result.IsNegative() {
		result = decimal.Zero
	}
	sheet.TotalLiabilities = sheet.TotalEquity.
		Add(sheet.TotalPayables).
		Add(sheet.TotalTreasuryLiability).
		Add(result)
	return sheet, nil
}

func agedBucket(ageDays int) string {
	switch {
	case ageDays <= 30:
		return domain.AgedBucketLabels[0]
	case ageDays <= 60:
		return domain.AgedBucketLabels[1]
	case ageDays <= 90:
		return domain.AgedBucketLabels[2]
	default:
		return domain.AgedBucketLabels[3]
	}
}

func newAgedBalance(kind domain.AgedBalanceKind) *domain.AgedBalance {
	buckets := make(map[string]decimal.Decimal, len(domain.AgedBucketLabels))
	for _, label := range domain.AgedBucketLabels {
		buckets[label] = decimal.Zero
	}
	return &domain.AgedBalance{
		Kind:       kind,
		Items:      []domain.AgedItem{},
		Buckets:    buckets,
		GrandTotal: decimal.Zero,
	}
}

// AgedBalance builds the aging report: outstanding credit sales for
// clients, open supplier invoice entries for suppliers.
func (s *reportingService) AgedBalance(ctx context.Context, kind domain.AgedBalanceKind, asOf time.Time) (*domain.AgedBalance, error) {
	switch kind {
	case domain.AgedClients:
		return s.agedClients(ctx, asOf)
	case domain.AgedSuppliers:
		return s.agedSuppliers(ctx, asOf)
	default:
		return nil, fmt.Errorf("unknown aged balance kind %q", kind)
	}
}

func (s *reportingService) agedClients(ctx context.Context, asOf time.Time) (*domain.AgedBalance, error) {
	sales, err := s.reportingRepo.GetUnpaidCreditSales(ctx)
	if err != nil {
		return nil, err
	}

	report := newAgedBalance(domain.AgedClients)
	for _, sale := range sales {
		ageDays := int(asOf.Sub(sale.SaleDate).Hours() / 24)
		if ageDays < 0 {
			ageDays = 0
		}
		bucket := agedBucket(ageDays)
		report.Items = append(report.Items, domain.AgedItem{
			Reference: fmt.Sprintf("Vente #%d", sale.SaleID),
			Party:     sale.ClientName,
			Date:      sale.SaleDate,
			DueDate:   sale.DueDate,
			AgeDays:   ageDays,
			Bucket:    bucket,
			Amount:    sale.AmountRemaining,
		})
		report.Buckets[bucket] = report.Buckets[bucket].Add(sale.AmountRemaining)
		report.GrandTotal = report.GrandTotal.Add(sale.AmountRemaining)
	}
	return report, nil
}

// agedSuppliers ages the payables account by entry date: each credit on
// the suppliers account is an invoice, aged from its entry date. Payments
// are not matched to invoices, so the grand total is the sum of the
// bucketed invoice amounts.
func (s *reportingService) agedSuppliers(ctx context.Context, asOf time.Time) (*domain.AgedBalance, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accounting.CodeSuppliers)
	if err != nil {
		return nil, err
	}
	lines, err := s.entryRepo.FindLinesByAccount(ctx, account.AccountID, nil)
	if err != nil {
		return nil, err
	}

	report := newAgedBalance(domain.AgedSuppliers)
	for _, line := range lines {
		if !line.Credit.IsPositive() {
			continue
		}
		ageDays := int(asOf.Sub(line.EntryDate).Hours() / 24)
		if ageDays < 0 {
			ageDays = 0
		}
		bucket := agedBucket(ageDays)
		report.Items = append(report.Items, domain.AgedItem{
			Reference: line.EntryReference,
			Party:     line.EntryDescription,
			Date:      line.EntryDate,
			AgeDays:   ageDays,
			Bucket:    bucket,
			Amount:    line.Credit,
		})
		report.Buckets[bucket] = report.Buckets[bucket].Add(line.Credit)
		report.GrandTotal = report.GrandTotal.Add(line.Credit)
	}
	return report, nil
}

// ProductMargins computes per-product cost and margin, sorted by
// descending margin.
func (s *reportingService) ProductMargins(ctx context.Context, exerciseID *string) (*domain.ProductMarginReport, error) {
	items, err := s.reportingRepo.GetProductSales(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	report := &domain.ProductMarginReport{Items: items}
	for i := range report.Items {
		item := &report.Items[i]
		item.Cost = item.QtySold.Mul(item.UnitCost)
		item.Margin = item.Revenue.Sub(item.Cost)
		if item.Revenue.IsPositive() {
			item.MarginPct = item.Margin.Div(item.Revenue).Mul(hundred).Round(2)
		}
		report.TotalRevenue = report.TotalRevenue.Add(item.Revenue)
		report.TotalCost = report.TotalCost.Add(item.Cost)
		report.TotalMargin = report.TotalMargin.Add(item.Margin)
	}
	sort.SliceStable(report.Items, func(i, j int) bool {
		return report.Items[i].Margin.GreaterThan(report.Items[j].Margin)
	})
	return report, nil
}
