package repositories

import (
	"context"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader provides read access to the chart of accounts.
type AccountReader interface {
	// FindAccountByCode returns the account with the given chart code or
	// apperrors.ErrNotFound.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	// FindAccountsByCodes returns the named accounts keyed by code; missing
	// codes are simply absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
	// ListActiveAccounts returns all active accounts ordered by code.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
	// SumAccountLines sums debit and credit over validated, non-deleted
	// lines of the account, optionally scoped to an exercise.
	SumAccountLines(ctx context.Context, accountID string, exerciseID *string) (debit, credit decimal.Decimal, err error)
}

// AccountWriter persists chart-of-accounts rows.
type AccountWriter interface {
	// SaveAccountIfAbsent inserts the account unless its code already
	// exists; it reports whether a row was created.
	SaveAccountIfAbsent(ctx context.Context, account domain.Account) (created bool, err error)
}

// AccountRepository is the full chart-of-accounts persistence surface.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
