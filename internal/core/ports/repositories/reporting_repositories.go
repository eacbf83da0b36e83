package repositories

import (
	"context"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository serves the aggregation read paths. All queries see
// only validated, non-deleted entries.
type ReportingRepository interface {
	// GetAccountActivity returns per-account debit/credit totals for every
	// active account with activity, ordered by code; Balance is left for
	// the service to compute. One query feeds the trial balance, income
	// statement and balance sheet.
	GetAccountActivity(ctx context.Context, exerciseID *string) ([]domain.TrialBalanceRow, error)

	// GetUnpaidCreditSales returns outstanding credit sales for the aged
	// receivables report.
	GetUnpaidCreditSales(ctx context.Context) ([]domain.CreditSaleOutstanding, error)

	// GetProductSales returns per-product quantity sold, revenue and last
	// purchase price for the margin report.
	GetProductSales(ctx context.Context, exerciseID *string) ([]domain.ProductMargin, error)

	// GetVATTotals sums credits on the VAT-collected account and debits on
	// the VAT-deductible account over the range.
	GetVATTotals(ctx context.Context, exerciseID *string, dateRange DateRange) (collected, deductible decimal.Decimal, err error)

	// GetVATMonthly returns the month-by-month collected/deductible
	// breakdown over the range, both sides zero-filled.
	GetVATMonthly(ctx context.Context, exerciseID *string, dateRange DateRange) ([]domain.VATMonth, error)
}
