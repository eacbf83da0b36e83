package mapping

import (
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/shopledger/shop_ledger_app/internal/models"
)

// ToModelTaxRate converts a domain TaxRate to a model TaxRate
func ToModelTaxRate(d domain.TaxRate) models.TaxRate {
	return models.TaxRate{
		TaxRateID:   d.TaxRateID,
		Name:        d.Name,
		Rate:        d.Rate,
		IsDefault:   d.IsDefault,
		IsActive:    d.IsActive,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxRate converts a model TaxRate to a domain TaxRate
func ToDomainTaxRate(m models.TaxRate) domain.TaxRate {
	return domain.TaxRate{
		TaxRateID:   m.TaxRateID,
		Name:        m.Name,
		Rate:        m.Rate,
		IsDefault:   m.IsDefault,
		IsActive:    m.IsActive,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxRateSlice converts a slice of model TaxRates to domain TaxRates
func ToDomainTaxRateSlice(ms []models.TaxRate) []domain.TaxRate {
	ds := make([]domain.TaxRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxRate(m)
	}
	return ds
}
