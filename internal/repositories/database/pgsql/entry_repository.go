package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	"github.com/shopledger/shop_ledger_app/internal/utils/mapping"
)

// referenceMaxAttempts bounds the retry loop on reference collisions when
// two writers post to the same journal on the same day.
const referenceMaxAttempts = 5

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepository {
	return &PgxEntryRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepository
var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// nextReference builds the sequential reference for a journal and date,
// e.g. VE-20260115-003. The sequence is read inside the caller's
// transaction; the unique constraint on reference catches races.
func nextReference(ctx context.Context, tx pgx.Tx, journal domain.JournalKind, date time.Time) (string, error) {
	var seq int
	query := `
		SELECT COUNT(*) + 1
		FROM journal_entries
		WHERE journal = $1 AND entry_date::date = $2::date;
	`
	if err := tx.QueryRow(ctx, query, string(journal), date).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to compute next reference: %w", err)
	}
	return fmt.Sprintf("%s-%s-%03d", journal, date.Format("20060102"), seq), nil
}

// CreateEntry persists an entry header and its lines atomically. The
// reference is generated inside the transaction; when the entry is tied
// to a sale, the sale's accounting flag is stamped in the same
// transaction. Retries on reference collision.
func (r *PgxEntryRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	return r.createEntryRetrying(ctx, entry, lines, false)
}

// CreateSaleEntry additionally settles the sale's VAT flag inside the
// transaction when the entry already carries the tax split.
func (r *PgxEntryRepository) CreateSaleEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, vatSettled bool) (*domain.JournalEntry, error) {
	return r.createEntryRetrying(ctx, entry, lines, vatSettled)
}

func (r *PgxEntryRepository) createEntryRetrying(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, vatSettled bool) (*domain.JournalEntry, error) {
	var lastErr error
	for attempt := 0; attempt < referenceMaxAttempts; attempt++ {
		created, err := r.createEntryOnce(ctx, entry, lines, vatSettled)
		if err == nil {
			return created, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: exhausted reference attempts for journal %s: %v", apperrors.ErrConflict, entry.Journal, lastErr)
}

func (r *PgxEntryRepository) createEntryOnce(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, vatSettled bool) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if entry.Reference == "" {
		ref, err := nextReference(ctx, tx, entry.Journal, entry.Date)
		if err != nil {
			return nil, err
		}
		entry.Reference = ref
	}

	if err := insertEntryTx(ctx, tx, entry, lines); err != nil {
		return nil, err
	}

	if entry.SaleID != nil {
		updateQuery := `UPDATE sales SET accounting_posted = TRUE, vat_entry_recorded = vat_entry_recorded OR $2 WHERE id = $1;`
		if _, err := tx.Exec(ctx, updateQuery, *entry.SaleID, vatSettled); err != nil {
			return nil, fmt.Errorf("failed to flag sale %d as posted: %w", *entry.SaleID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, reference, entry_date, description, journal, exercise_id, daily_id,
			is_validated, sale_id, supply_id, expense_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.Reference,
		m.EntryDate,
		m.Description,
		m.Journal,
		m.ExerciseID,
		m.DailyID,
		m.IsValidated,
		m.SaleID,
		m.SupplyID,
		m.ExpenseID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (
			line_id, entry_id, account_id, debit, credit, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		lm := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			m.EntryID,
			lm.AccountID,
			lm.Debit,
			lm.Credit,
			lm.Description,
			lm.CreatedAt,
			lm.CreatedBy,
			lm.LastUpdatedAt,
			lm.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert entry line: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line batch: %w", err)
	}
	return nil
}

// CreateSaleVATEntry records the deferred VAT entry for a sale. The sale
// row is locked and its flag rechecked inside the transaction so two
// daily closings cannot record VAT twice for the same sale.
func (r *PgxEntryRepository) CreateSaleVATEntry(ctx context.Context, saleID int64, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, bool, error) {
	var lastErr error
	for attempt := 0; attempt < referenceMaxAttempts; attempt++ {
		created, alreadyRecorded, err := r.createSaleVATEntryOnce(ctx, saleID, entry, lines)
		if err == nil {
			return created, alreadyRecorded, nil
		}
		if !isUniqueViolation(err) {
			return nil, false, err
		}
		lastErr = err
	}
	return nil, false, fmt.Errorf("%w: exhausted reference attempts for sale %d VAT entry: %v", apperrors.ErrConflict, saleID, lastErr)
}

func (r *PgxEntryRepository) createSaleVATEntryOnce(ctx context.Context, saleID int64, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer r.Rollback(ctx, tx)

	var recorded bool
	lockQuery := `SELECT vat_entry_recorded FROM sales WHERE id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, saleID).Scan(&recorded); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, fmt.Errorf("%w: sale %d", apperrors.ErrNotFound, saleID)
		}
		return nil, false, fmt.Errorf("failed to lock sale %d: %w", saleID, err)
	}
	if recorded {
		return nil, true, r.Commit(ctx, tx)
	}

	if entry.Reference == "" {
		ref, err := nextReference(ctx, tx, entry.Journal, entry.Date)
		if err != nil {
			return nil, false, err
		}
		entry.Reference = ref
	}

	if err := insertEntryTx(ctx, tx, entry, lines); err != nil {
		return nil, false, err
	}

	flagQuery := `UPDATE sales SET vat_entry_recorded = TRUE WHERE id = $1;`
	if _, err := tx.Exec(ctx, flagQuery, saleID); err != nil {
		return nil, false, fmt.Errorf("failed to flag sale %d 'VAT recorded': %w", saleID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	entry.Lines = lines
	return &entry, false, nil
}

const entryColumns = `entry_id, reference, entry_date, description, journal, exercise_id, daily_id, is_validated, sale_id, supply_id, expense_id, created_at, created_by, last_updated_at, last_updated_by`

// FindEntryByID retrieves an entry with its lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := r.findLinesByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var journal string
	err := row.Scan(
		&e.EntryID,
		&e.Reference,
		&e.Date,
		&e.Description,
		&journal,
		&e.ExerciseID,
		&e.DailyID,
		&e.IsValidated,
		&e.SaleID,
		&e.SupplyID,
		&e.ExpenseID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	e.Journal = domain.JournalKind(journal)
	return &e, nil
}

func (r *PgxEntryRepository) findLinesByEntry(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, a.code, l.debit, l.credit, l.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM journal_entry_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = $1
		ORDER BY l.created_at, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var l domain.JournalEntryLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.AccountCode,
			&l.Debit,
			&l.Credit,
			&l.Description,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry lines: %w", err)
	}
	return lines, nil
}

// FindLinesByAccount retrieves an account's lines with their entry
// context, ordered chronologically, optionally within one exercise.
func (r *PgxEntryRepository) FindLinesByAccount(ctx context.Context, accountID string, exerciseID *string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, a.code, l.debit, l.credit, l.description,
		       e.reference, e.entry_date, e.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.account_id = $1
		  AND ($2::text IS NULL OR e.exercise_id = $2)
		ORDER BY e.entry_date, e.reference, l.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var l domain.JournalEntryLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.AccountCode,
			&l.Debit,
			&l.Credit,
			&l.Description,
			&l.EntryReference,
			&l.EntryDate,
			&l.EntryDescription,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account lines: %w", err)
	}
	return lines, nil
}
