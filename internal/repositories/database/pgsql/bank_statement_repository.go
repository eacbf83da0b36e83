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

type PgxBankStatementRepository struct {
	BaseRepository
}

// newPgxBankStatementRepository creates a new repository for bank
// statement lines.
func newPgxBankStatementRepository(pool *pgxpool.Pool) portsrepo.BankStatementRepository {
	return &PgxBankStatementRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxBankStatementRepository implements portsrepo.BankStatementRepository
var _ portsrepo.BankStatementRepository = (*PgxBankStatementRepository)(nil)

const bankStatementColumns = `statement_id, account_id, statement_date, description, reference, amount, direction, is_reconciled, reconciled_line_id, reconciled_at, reconciled_by, created_at, created_by, last_updated_at, last_updated_by`

func scanBankStatement(row pgx.Row) (models.BankStatement, error) {
	var m models.BankStatement
	err := row.Scan(
		&m.StatementID,
		&m.AccountID,
		&m.StatementDate,
		&m.Description,
		&m.Reference,
		&m.Amount,
		&m.Direction,
		&m.IsReconciled,
		&m.ReconciledLineID,
		&m.ReconciledAt,
		&m.ReconciledBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// BulkInsertStatements inserts imported statement lines in one
// transaction and returns the number created.
func (r *PgxBankStatementRepository) BulkInsertStatements(ctx context.Context, statements []domain.BankStatement) (int, error) {
	if len(statements) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO bank_statements (` + bankStatementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	for _, d := range statements {
		m := mapping.ToModelBankStatement(d)
		batch.Queue(query,
			m.StatementID,
			m.AccountID,
			m.StatementDate,
			m.Description,
			m.Reference,
			m.Amount,
			m.Direction,
			m.IsReconciled,
			m.ReconciledLineID,
			m.ReconciledAt,
			m.ReconciledBy,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range statements {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("failed to insert bank statement: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to close statement batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return len(statements), nil
}

// FindStatementsByAccount returns the account's statement lines in date
// order, optionally bounded by the range.
func (r *PgxBankStatementRepository) FindStatementsByAccount(ctx context.Context, accountID string, dateRange portsrepo.DateRange) ([]domain.BankStatement, error) {
	query := `
		SELECT ` + bankStatementColumns + `
		FROM bank_statements
		WHERE account_id = $1
		  AND ($2::timestamptz IS NULL OR statement_date >= $2)
		  AND ($3::timestamptz IS NULL OR statement_date <= $3)
		ORDER BY statement_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, dateRange.From, dateRange.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements for account %s: %w", accountID, err)
	}
	defer rows.Close()

	statements := []models.BankStatement{}
	for rows.Next() {
		m, err := scanBankStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank statement row: %w", err)
		}
		statements = append(statements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank statement rows: %w", err)
	}
	return mapping.ToDomainBankStatementSlice(statements), nil
}

// FindStatementByID retrieves a statement line by ID.
func (r *PgxBankStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	query := `SELECT ` + bankStatementColumns + ` FROM bank_statements WHERE statement_id = $1;`
	m, err := scanBankStatement(r.Pool.QueryRow(ctx, query, statementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: statement %s", apperrors.ErrNotFound, statementID)
		}
		return nil, fmt.Errorf("failed to find statement %s: %w", statementID, err)
	}
	d := mapping.ToDomainBankStatement(m)
	return &d, nil
}

// MarkReconciled records the match between a statement line and a ledger
// line. Reconciling an already matched statement is a conflict.
func (r *PgxBankStatementRepository) MarkReconciled(ctx context.Context, statementID string, ledgerLineID string, userID string, at time.Time) error {
	query := `
		UPDATE bank_statements
		SET is_reconciled = TRUE, reconciled_line_id = $2, reconciled_at = $3, reconciled_by = $4,
		    last_updated_at = $5, last_updated_by = $4
		WHERE statement_id = $1 AND is_reconciled = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, statementID, ledgerLineID, at, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to reconcile statement %s: %w", statementID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindStatementByID(ctx, statementID); err != nil {
			return err
		}
		return fmt.Errorf("%w: statement %s is already reconciled", apperrors.ErrConflict, statementID)
	}
	return nil
}

// MarkUnreconciled clears the statement's match.
func (r *PgxBankStatementRepository) MarkUnreconciled(ctx context.Context, statementID string) error {
	query := `
		UPDATE bank_statements
		SET is_reconciled = FALSE, reconciled_line_id = NULL, reconciled_at = NULL, reconciled_by = '',
		    last_updated_at = $2
		WHERE statement_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, statementID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to unreconcile statement %s: %w", statementID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: statement %s", apperrors.ErrNotFound, statementID)
	}
	return nil
}
