package repositories

import (
	"context"
	"time"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
)

// DateRange bounds a query by entry/statement date; nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// BankStatementRepository persists imported bank-statement lines and their
// reconciliation state.
type BankStatementRepository interface {
	// BulkInsertStatements inserts the imported lines for one account and
	// returns the number created.
	BulkInsertStatements(ctx context.Context, statements []domain.BankStatement) (int, error)
	// FindStatementsByAccount returns the account's statement lines in date
	// order, optionally bounded.
	FindStatementsByAccount(ctx context.Context, accountID string, dateRange DateRange) ([]domain.BankStatement, error)
	// FindStatementByID returns a statement line or apperrors.ErrNotFound.
	FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error)
	// MarkReconciled records the match between a statement line and a
	// ledger line.
	MarkReconciled(ctx context.Context, statementID string, ledgerLineID string, userID string, at time.Time) error
	// MarkUnreconciled clears the match.
	MarkUnreconciled(ctx context.Context, statementID string) error
}
