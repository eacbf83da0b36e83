package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	"github.com/shopledger/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a repository for the aggregation read
// paths.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository{Pool: pool}}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetAccountActivity aggregates debit and credit per account with
// activity, ordered by code. Balance is left zero for the service to
// derive from the account type.
func (r *ReportingRepository) GetAccountActivity(ctx context.Context, exerciseID *string) ([]domain.TrialBalanceRow, error) {
	return queryAccountActivity(ctx, r.Pool, exerciseID)
}

// pgxQuerier is satisfied by both the pool and a transaction, so the
// activity aggregation can run inside the closing transactions.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryAccountActivity(ctx context.Context, q pgxQuerier, exerciseID *string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM accounts a
		JOIN journal_entry_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.is_active = TRUE
		  AND e.is_validated = TRUE
		  AND ($1::text IS NULL OR e.exercise_id = $1)
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := q.Query(ctx, query, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.TotalDebit,
			&row.TotalCredit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account activity row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return result, nil
}

// GetUnpaidCreditSales returns credit sales with an outstanding balance,
// oldest sale first.
func (r *ReportingRepository) GetUnpaidCreditSales(ctx context.Context) ([]domain.CreditSaleOutstanding, error) {
	query := `
		SELECT cs.sale_id, cs.client_name, s.created_at, cs.due_date, cs.amount_remaining
		FROM credit_sales cs
		JOIN sales s ON s.id = cs.sale_id
		WHERE cs.amount_remaining > 0
		ORDER BY s.created_at;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unpaid credit sales: %w", err)
	}
	defer rows.Close()

	result := []domain.CreditSaleOutstanding{}
	for rows.Next() {
		var s domain.CreditSaleOutstanding
		if err := rows.Scan(&s.SaleID, &s.ClientName, &s.SaleDate, &s.DueDate, &s.AmountRemaining); err != nil {
			return nil, fmt.Errorf("failed to scan credit sale row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit sale rows: %w", err)
	}
	return result, nil
}

// GetProductSales aggregates quantity sold and revenue per product,
// with the product's current purchase price as unit cost.
func (r *ReportingRepository) GetProductSales(ctx context.Context, exerciseID *string) ([]domain.ProductMargin, error) {
	query := `
		SELECT p.id, p.name,
		       COALESCE(SUM(sp.quantity), 0),
		       COALESCE(SUM(sp.quantity * sp.unit_price), 0),
		       p.purchase_price
		FROM sale_products sp
		JOIN products p ON p.id = sp.product_id
		JOIN sales s ON s.id = sp.sale_id
		LEFT JOIN dailies d ON d.daily_id = s.daily_id
		WHERE ($1::text IS NULL OR d.exercise_id = $1)
		GROUP BY p.id, p.name, p.purchase_price
		ORDER BY p.name;
	`
	rows, err := r.Pool.Query(ctx, query, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product sales: %w", err)
	}
	defer rows.Close()

	result := []domain.ProductMargin{}
	for rows.Next() {
		var m domain.ProductMargin
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.QtySold, &m.Revenue, &m.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan product sales row: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product sales rows: %w", err)
	}
	return result, nil
}

// GetVATTotals sums credits on the VAT collected account and debits on
// the VAT deductible account over the range.
func (r *ReportingRepository) GetVATTotals(ctx context.Context, exerciseID *string, dateRange portsrepo.DateRange) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN a.code = $1 THEN l.credit ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN a.code = $2 THEN l.debit ELSE 0 END), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE a.code IN ($1, $2)
		  AND e.is_validated = TRUE
		  AND ($3::text IS NULL OR e.exercise_id = $3)
		  AND ($4::timestamptz IS NULL OR e.entry_date >= $4)
		  AND ($5::timestamptz IS NULL OR e.entry_date <= $5);
	`
	var collected, deductible decimal.Decimal
	err := r.Pool.QueryRow(ctx, query,
		accounting.CodeVATCollected,
		accounting.CodeVATDeductible,
		exerciseID,
		dateRange.From,
		dateRange.To,
	).Scan(&collected, &deductible)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to query VAT totals: %w", err)
	}
	return collected, deductible, nil
}

// GetVATMonthly breaks the VAT totals down by calendar month.
func (r *ReportingRepository) GetVATMonthly(ctx context.Context, exerciseID *string, dateRange portsrepo.DateRange) ([]domain.VATMonth, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM e.entry_date)::int,
			EXTRACT(MONTH FROM e.entry_date)::int,
			COALESCE(SUM(CASE WHEN a.code = $1 THEN l.credit ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN a.code = $2 THEN l.debit ELSE 0 END), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE a.code IN ($1, $2)
		  AND e.is_validated = TRUE
		  AND ($3::text IS NULL OR e.exercise_id = $3)
		  AND ($4::timestamptz IS NULL OR e.entry_date >= $4)
		  AND ($5::timestamptz IS NULL OR e.entry_date <= $5)
		GROUP BY 1, 2
		ORDER BY 1, 2;
	`
	rows, err := r.Pool.Query(ctx, query,
		accounting.CodeVATCollected,
		accounting.CodeVATDeductible,
		exerciseID,
		dateRange.From,
		dateRange.To,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly VAT: %w", err)
	}
	defer rows.Close()

	result := []domain.VATMonth{}
	for rows.Next() {
		var year, month int
		var m domain.VATMonth
		if err := rows.Scan(&year, &month, &m.Collected, &m.Deductible); err != nil {
			return nil, fmt.Errorf("failed to scan monthly VAT row: %w", err)
		}
		m.Year = year
		m.Month = time.Month(month)
		m.Due = m.Collected.Sub(m.Deductible)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly VAT rows: %w", err)
	}
	return result, nil
}
