package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type chartService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewChartService creates the chart of accounts service.
func NewChartService(accountRepo portsrepo.AccountRepository) portssvc.ChartSvcFacade {
	return &chartService{accountRepo: accountRepo}
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

// InitChartOfAccounts seeds the default chart. Existing codes are left
// untouched, so the operation is idempotent and safe to run at every
// startup.
func (s *chartService) InitChartOfAccounts(ctx context.Context, userID string) (int, error) {
	now := time.Now()
	created := 0
	for _, spec := range accounting.DefaultChart {
		account := domain.Account{
			AccountID:   uuid.NewString(),
			Code:        spec.Code,
			Name:        spec.Name,
			AccountType: spec.Type,
			ParentCode:  spec.ParentCode,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		inserted, err := s.accountRepo.SaveAccountIfAbsent(ctx, account)
		if err != nil {
			s.LogError(ctx, err, "failed to seed account", "code", spec.Code)
			return created, err
		}
		if inserted {
			created++
		}
	}
	s.LogInfo(ctx, "chart of accounts initialized", "created", created)
	return created, nil
}

// GetAccount returns the account with the given chart code.
func (s *chartService) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

// ListAccounts returns all active accounts ordered by code.
func (s *chartService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListActiveAccounts(ctx)
}

// GetBalance derives the account's balance from its lines.
func (s *chartService) GetBalance(ctx context.Context, code string, exerciseID *string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	debit, credit, err := s.accountRepo.SumAccountLines(ctx, account.AccountID, exerciseID)
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := accounting.NaturalBalance(account.AccountType, debit, credit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", code, err)
	}
	return balance, nil
}
