package domain

import "github.com/shopspring/decimal"

// TaxRate is a configurable VAT rate. Exactly one rate should be flagged
// default+active at a time; default lookups return that one.
type TaxRate struct {
	TaxRateID   string          `json:"taxRateID"` // Primary key (UUID)
	Name        string          `json:"name"`
	Rate        decimal.Decimal `json:"rate"` // Percentage, e.g. 19.25
	IsDefault   bool            `json:"isDefault"`
	IsActive    bool            `json:"isActive"`
	Description string          `json:"description"`
	AuditFields
}
