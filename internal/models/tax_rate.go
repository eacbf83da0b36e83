package models

import "github.com/shopspring/decimal"

// TaxRate represents a VAT rate row.
type TaxRate struct {
	TaxRateID   string          `db:"tax_rate_id"`
	Name        string          `db:"name"`
	Rate        decimal.Decimal `db:"rate"`
	IsDefault   bool            `db:"is_default"`
	IsActive    bool            `db:"is_active"`
	Description string          `db:"description"`
	AuditFields
}
