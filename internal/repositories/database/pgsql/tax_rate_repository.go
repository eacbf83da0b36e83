package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	"github.com/shopledger/shop_ledger_app/internal/models"
	"github.com/shopledger/shop_ledger_app/internal/utils/mapping"
)

type PgxTaxRateRepository struct {
	BaseRepository
}

// newPgxTaxRateRepository creates a new repository for VAT rates.
func newPgxTaxRateRepository(pool *pgxpool.Pool) portsrepo.TaxRateRepository {
	return &PgxTaxRateRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxTaxRateRepository implements portsrepo.TaxRateRepository
var _ portsrepo.TaxRateRepository = (*PgxTaxRateRepository)(nil)

const taxRateColumns = `tax_rate_id, name, rate, is_default, is_active, description, created_at, created_by, last_updated_at, last_updated_by`

func scanTaxRate(row pgx.Row) (models.TaxRate, error) {
	var m models.TaxRate
	err := row.Scan(
		&m.TaxRateID,
		&m.Name,
		&m.Rate,
		&m.IsDefault,
		&m.IsActive,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTaxRate inserts a rate. A new default clears the previous default
// inside the same transaction, so at most one active default exists.
func (r *PgxTaxRateRepository) SaveTaxRate(ctx context.Context, rate domain.TaxRate) error {
	m := mapping.ToModelTaxRate(rate)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if m.IsDefault {
		clearQuery := `
			UPDATE tax_rates
			SET is_default = FALSE, last_updated_at = $1, last_updated_by = $2
			WHERE is_default = TRUE;
		`
		if _, err := tx.Exec(ctx, clearQuery, time.Now(), m.LastUpdatedBy); err != nil {
			return fmt.Errorf("failed to clear previous default tax rate: %w", err)
		}
	}

	insertQuery := `
		INSERT INTO tax_rates (` + taxRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TaxRateID,
		m.Name,
		m.Rate,
		m.IsDefault,
		m.IsActive,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tax rate %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save tax rate %q: %w", m.Name, err)
	}

	return r.Commit(ctx, tx)
}

// FindDefaultTaxRate returns the active default rate, or nil when no
// default is configured.
func (r *PgxTaxRateRepository) FindDefaultTaxRate(ctx context.Context) (*domain.TaxRate, error) {
	query := `SELECT ` + taxRateColumns + ` FROM tax_rates WHERE is_default = TRUE AND is_active = TRUE;`
	m, err := scanTaxRate(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find default tax rate: %w", err)
	}
	d := mapping.ToDomainTaxRate(m)
	return &d, nil
}

// ListActiveTaxRates returns all active rates ordered by rate.
func (r *PgxTaxRateRepository) ListActiveTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	query := `SELECT ` + taxRateColumns + ` FROM tax_rates WHERE is_active = TRUE ORDER BY rate;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax rates: %w", err)
	}
	defer rows.Close()

	rates := []models.TaxRate{}
	for rows.Next() {
		m, err := scanTaxRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax rate row: %w", err)
		}
		rates = append(rates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax rate rows: %w", err)
	}
	return mapping.ToDomainTaxRateSlice(rates), nil
}
