package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
)

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates the engine's narrow view over the sales
// tables.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepository {
	return &PgxSaleRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepository
var _ portsrepo.SaleRepository = (*PgxSaleRepository)(nil)

// FindVATPendingSales returns the daily's taxable sales whose deferred
// VAT entry has not been recorded yet.
func (r *PgxSaleRepository) FindVATPendingSales(ctx context.Context, dailyID string) ([]domain.VATPendingSale, error) {
	query := `
		SELECT id, total
		FROM sales
		WHERE daily_id = $1 AND has_vat = TRUE AND vat_entry_recorded = FALSE
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query, dailyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query VAT pending sales for daily %s: %w", dailyID, err)
	}
	defer rows.Close()

	sales := []domain.VATPendingSale{}
	for rows.Next() {
		var s domain.VATPendingSale
		if err := rows.Scan(&s.SaleID, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan VAT pending sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating VAT pending sales: %w", err)
	}
	return sales, nil
}

// MarkVATRecorded flags a sale's VAT as recorded without posting an
// entry. Used when the computed tax for the sale is zero.
func (r *PgxSaleRepository) MarkVATRecorded(ctx context.Context, saleID int64) error {
	query := `UPDATE sales SET vat_entry_recorded = TRUE WHERE id = $1;`
	tag, err := r.Pool.Exec(ctx, query, saleID)
	if err != nil {
		return fmt.Errorf("failed to mark sale %d VAT recorded: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %d", apperrors.ErrNotFound, saleID)
	}
	return nil
}

// ListPendingAccounting returns sales whose journal entry was never
// posted, oldest first.
func (r *PgxSaleRepository) ListPendingAccounting(ctx context.Context) ([]domain.PendingSale, error) {
	query := `
		SELECT id, daily_id, total, is_credit, has_vat, created_at
		FROM sales
		WHERE accounting_posted = FALSE
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending accounting sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.PendingSale{}
	for rows.Next() {
		var s domain.PendingSale
		if err := rows.Scan(&s.SaleID, &s.DailyID, &s.Total, &s.IsCredit, &s.HasVAT, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending sales: %w", err)
	}
	return sales, nil
}
