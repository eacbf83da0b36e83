package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	"github.com/shopledger/shop_ledger_app/internal/models"
	"github.com/shopledger/shop_ledger_app/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for exercises and dailies.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepository
var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

const exerciseColumns = `exercise_id, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

func scanExercise(row pgx.Row) (models.Exercise, error) {
	var m models.Exercise
	err := row.Scan(
		&m.ExerciseID,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// GetOrCreateOpenExercise returns the single open exercise. The insert
// relies on the partial unique index over open exercises, so concurrent
// callers converge on one row.
func (r *PgxPeriodRepository) GetOrCreateOpenExercise(ctx context.Context, userID string) (*domain.Exercise, error) {
	now := time.Now()
	insertQuery := `
		INSERT INTO exercises (exercise_id, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, NULL, $3, $4, $3, $4)
		ON CONFLICT ((end_date IS NULL)) WHERE end_date IS NULL DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, insertQuery, uuid.NewString(), now, now, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure open exercise: %w", err)
	}

	selectQuery := `SELECT ` + exerciseColumns + ` FROM exercises WHERE end_date IS NULL;`
	m, err := scanExercise(r.Pool.QueryRow(ctx, selectQuery))
	if err != nil {
		return nil, fmt.Errorf("failed to load open exercise: %w", err)
	}
	d := mapping.ToDomainExercise(m)
	return &d, nil
}

// FindExerciseByID retrieves an exercise by ID.
func (r *PgxPeriodRepository) FindExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE exercise_id = $1;`
	m, err := scanExercise(r.Pool.QueryRow(ctx, query, exerciseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exercise %s", apperrors.ErrNotFound, exerciseID)
		}
		return nil, fmt.Errorf("failed to find exercise %s: %w", exerciseID, err)
	}
	d := mapping.ToDomainExercise(m)
	return &d, nil
}

const dailyColumns = `daily_id, exercise_id, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

func scanDaily(row pgx.Row) (models.Daily, error) {
	var m models.Daily
	err := row.Scan(
		&m.DailyID,
		&m.ExerciseID,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// GetOrCreateOpenDaily returns the open daily session of the exercise,
// creating it when none is open. Race-safe through the partial unique
// index over open dailies.
func (r *PgxPeriodRepository) GetOrCreateOpenDaily(ctx context.Context, exerciseID string, userID string) (*domain.Daily, error) {
	now := time.Now()
	insertQuery := `
		INSERT INTO dailies (daily_id, exercise_id, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, NULL, $4, $5, $4, $5)
		ON CONFLICT (exercise_id) WHERE end_date IS NULL DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, insertQuery, uuid.NewString(), exerciseID, now, now, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure open daily: %w", err)
	}

	selectQuery := `SELECT ` + dailyColumns + ` FROM dailies WHERE exercise_id = $1 AND end_date IS NULL;`
	m, err := scanDaily(r.Pool.QueryRow(ctx, selectQuery, exerciseID))
	if err != nil {
		return nil, fmt.Errorf("failed to load open daily for exercise %s: %w", exerciseID, err)
	}
	d := mapping.ToDomainDaily(m)
	return &d, nil
}

// FindDailyByID retrieves a daily session by ID.
func (r *PgxPeriodRepository) FindDailyByID(ctx context.Context, dailyID string) (*domain.Daily, error) {
	query := `SELECT ` + dailyColumns + ` FROM dailies WHERE daily_id = $1;`
	m, err := scanDaily(r.Pool.QueryRow(ctx, query, dailyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: daily %s", apperrors.ErrNotFound, dailyID)
		}
		return nil, fmt.Errorf("failed to find daily %s: %w", dailyID, err)
	}
	d := mapping.ToDomainDaily(m)
	return &d, nil
}

// CloseDaily stamps the daily's end date. Closing an already closed daily
// returns apperrors.ErrConflict.
func (r *PgxPeriodRepository) CloseDaily(ctx context.Context, dailyID string, end time.Time, userID string) error {
	query := `
		UPDATE dailies
		SET end_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE daily_id = $1 AND end_date IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, dailyID, end, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to close daily %s: %w", dailyID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindDailyByID(ctx, dailyID); err != nil {
			return err
		}
		return fmt.Errorf("%w: daily %s is already closed", apperrors.ErrConflict, dailyID)
	}
	return nil
}
