package repositories

import (
	"context"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
)

// TaxRateRepository persists configurable VAT rates.
type TaxRateRepository interface {
	// SaveTaxRate inserts a rate. When the rate is flagged default, any
	// previous default is cleared in the same transaction.
	SaveTaxRate(ctx context.Context, rate domain.TaxRate) error
	// FindDefaultTaxRate returns the single active default rate, or nil
	// without error when no default is configured.
	FindDefaultTaxRate(ctx context.Context) (*domain.TaxRate, error)
	// ListActiveTaxRates returns all active rates ordered by rate.
	ListActiveTaxRates(ctx context.Context) ([]domain.TaxRate, error)
}

// SaleRepository is the engine's narrow view of the sales collaborator
// tables: the rows it scans for deferred VAT and pending-accounting work.
type SaleRepository interface {
	// FindVATPendingSales returns the daily's sales flagged taxable whose
	// deferred VAT entry has not been recorded.
	FindVATPendingSales(ctx context.Context, dailyID string) ([]domain.VATPendingSale, error)
	// MarkVATRecorded flags a sale's VAT entry as recorded without posting
	// anything (used for sales whose computed tax is zero).
	MarkVATRecorded(ctx context.Context, saleID int64) error
	// ListPendingAccounting returns sales whose accounting side-effect has
	// not been posted yet.
	ListPendingAccounting(ctx context.Context) ([]domain.PendingSale, error)
}
