package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_app/internal/dto"
	"github.com/shopledger/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type taxService struct {
	BaseService
	taxRateRepo   portsrepo.TaxRateRepository
	reportingRepo portsrepo.ReportingRepository
}

// NewTaxService creates the VAT service.
func NewTaxService(taxRateRepo portsrepo.TaxRateRepository, reportingRepo portsrepo.ReportingRepository) portssvc.TaxSvcFacade {
	return &taxService{taxRateRepo: taxRateRepo, reportingRepo: reportingRepo}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// CreateTaxRate registers a VAT rate.
func (s *taxService) CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest, userID string) (*domain.TaxRate, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: tax rate name is required", apperrors.ErrValidation)
	}
	if req.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	rate := domain.TaxRate{
		TaxRateID:   uuid.NewString(),
		Name:        req.Name,
		Rate:        req.Rate,
		IsDefault:   req.IsDefault,
		IsActive:    true,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.taxRateRepo.SaveTaxRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "failed to create tax rate", "name", req.Name)
		return nil, err
	}
	s.LogInfo(ctx, "tax rate created", "name", rate.Name, "rate", rate.Rate.String(), "default", rate.IsDefault)
	return &rate, nil
}

// DefaultTaxRate returns the configured default rate, or nil when VAT is
// not in use.
func (s *taxService) DefaultTaxRate(ctx context.Context) (*domain.TaxRate, error) {
	return s.taxRateRepo.FindDefaultTaxRate(ctx)
}

// SplitTax decomposes a tax-inclusive amount into net and tax parts.
func (s *taxService) SplitTax(amountTTC decimal.Decimal, rate *decimal.Decimal) (ht, tax decimal.Decimal) {
	return accounting.SplitTax(amountTTC, rate)
}

// VATDeclaration assembles the declaration: totals plus the monthly
// breakdown over the requested range.
func (s *taxService) VATDeclaration(ctx context.Context, exerciseID *string, dateRange portsrepo.DateRange) (*domain.VATDeclaration, error) {
	collected, deductible, err := s.reportingRepo.GetVATTotals(ctx, exerciseID, dateRange)
	if err != nil {
		return nil, err
	}
	monthly, err := s.reportingRepo.GetVATMonthly(ctx, exerciseID, dateRange)
	if err != nil {
		return nil, err
	}
	return &domain.VATDeclaration{
		Collected:  collected,
		Deductible: deductible,
		NetDue:     collected.Sub(deductible),
		Monthly:    monthly,
	}, nil
}
