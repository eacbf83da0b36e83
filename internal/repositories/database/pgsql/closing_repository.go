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

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for exercise closings.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepository {
	return &PgxClosingRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxClosingRepository implements portsrepo.ClosingRepository
var _ portsrepo.ClosingRepository = (*PgxClosingRepository)(nil)

// CloseExercise closes the exercise in one transaction: it locks the
// exercise row, rejects a second close with ErrConflict, aggregates the
// exercise's activity under that lock, posts the closing entry built from
// it, stamps the end date and writes the closing audit record.
func (r *PgxClosingRepository) CloseExercise(ctx context.Context, exerciseID string, end time.Time, build portsrepo.ClosingLineBuilder) (*domain.ExerciseClosing, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var endDate *time.Time
	lockQuery := `SELECT end_date FROM exercises WHERE exercise_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, exerciseID).Scan(&endDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exercise %s", apperrors.ErrNotFound, exerciseID)
		}
		return nil, fmt.Errorf("failed to lock exercise %s: %w", exerciseID, err)
	}
	if endDate != nil {
		return nil, fmt.Errorf("%w: exercise %s is already closed", apperrors.ErrConflict, exerciseID)
	}

	rows, err := queryAccountActivity(ctx, tx, &exerciseID)
	if err != nil {
		return nil, err
	}
	entry, lines, closing, err := build(rows)
	if err != nil {
		return nil, err
	}

	// A fully idle exercise closes without a closing entry.
	if len(lines) > 0 {
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
		closing.ClosingEntryID = &entry.EntryID
	}

	closeQuery := `
		UPDATE exercises
		SET end_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE exercise_id = $1;
	`
	if _, err := tx.Exec(ctx, closeQuery, exerciseID, end, time.Now(), closing.ClosedBy); err != nil {
		return nil, fmt.Errorf("failed to stamp exercise %s end date: %w", exerciseID, err)
	}

	closingQuery := `
		INSERT INTO exercise_closings (closing_id, exercise_id, closed_at, closed_by, result_amount, closing_entry_id, opening_entry_id, new_exercise_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, closingQuery,
		closing.ClosingID,
		closing.ExerciseID,
		closing.ClosedAt,
		closing.ClosedBy,
		closing.ResultAmount,
		closing.ClosingEntryID,
		closing.OpeningEntryID,
		closing.NewExerciseID,
		closing.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert closing record for exercise %s: %w", exerciseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &closing, nil
}

// OpenNewExercise inserts the successor exercise, builds and posts the
// opening carry-forward entry from the closed exercise's activity and
// links the closing record, all in one transaction.
func (r *PgxClosingRepository) OpenNewExercise(ctx context.Context, closingID string, newExercise domain.Exercise, build portsrepo.OpeningLineBuilder) (*domain.Exercise, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var closedExerciseID string
	var linkedExerciseID *string
	lockQuery := `SELECT exercise_id, new_exercise_id FROM exercise_closings WHERE closing_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, closingID).Scan(&closedExerciseID, &linkedExerciseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: closing %s", apperrors.ErrNotFound, closingID)
		}
		return nil, fmt.Errorf("failed to lock closing %s: %w", closingID, err)
	}
	if linkedExerciseID != nil {
		return nil, fmt.Errorf("%w: closing %s already opened a new exercise", apperrors.ErrConflict, closingID)
	}

	exerciseQuery := `
		INSERT INTO exercises (exercise_id, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, NULL, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, exerciseQuery,
		newExercise.ExerciseID,
		newExercise.StartDate,
		newExercise.CreatedAt,
		newExercise.CreatedBy,
		newExercise.LastUpdatedAt,
		newExercise.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: an exercise is already open", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert exercise %s: %w", newExercise.ExerciseID, err)
	}

	rows, err := queryAccountActivity(ctx, tx, &closedExerciseID)
	if err != nil {
		return nil, err
	}
	entry, lines, err := build(rows)
	if err != nil {
		return nil, err
	}

	// An exercise with nothing to carry forward opens without an entry.
	var openingEntryID *string
	if len(lines) > 0 {
		entry.ExerciseID = newExercise.ExerciseID
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
		openingEntryID = &entry.EntryID
	}

	linkQuery := `
		UPDATE exercise_closings
		SET opening_entry_id = $2, new_exercise_id = $3
		WHERE closing_id = $1;
	`
	if _, err := tx.Exec(ctx, linkQuery, closingID, openingEntryID, newExercise.ExerciseID); err != nil {
		return nil, fmt.Errorf("failed to link closing %s to new exercise: %w", closingID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &newExercise, nil
}

// FindClosingByID retrieves a closing audit record.
func (r *PgxClosingRepository) FindClosingByID(ctx context.Context, closingID string) (*domain.ExerciseClosing, error) {
	query := `
		SELECT closing_id, exercise_id, closed_at, closed_by, result_amount, closing_entry_id, opening_entry_id, new_exercise_id, notes
		FROM exercise_closings
		WHERE closing_id = $1;
	`
	var m models.ExerciseClosing
	err := r.Pool.QueryRow(ctx, query, closingID).Scan(
		&m.ClosingID,
		&m.ExerciseID,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.ResultAmount,
		&m.ClosingEntryID,
		&m.OpeningEntryID,
		&m.NewExerciseID,
		&m.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: closing %s", apperrors.ErrNotFound, closingID)
		}
		return nil, fmt.Errorf("failed to find closing %s: %w", closingID, err)
	}
	d := mapping.ToDomainExerciseClosing(m)
	return &d, nil
}
