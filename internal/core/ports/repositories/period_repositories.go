package repositories

import (
	"context"
	"time"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
)

// PeriodRepository manages fiscal exercises and daily sessions. Open-period
// uniqueness is enforced by partial unique indexes, so the get-or-create
// operations are race-safe.
type PeriodRepository interface {
	// GetOrCreateOpenExercise returns the single open exercise, creating one
	// when none exists.
	GetOrCreateOpenExercise(ctx context.Context, userID string) (*domain.Exercise, error)
	// FindExerciseByID returns the exercise or apperrors.ErrNotFound.
	FindExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error)

	// GetOrCreateOpenDaily returns the open daily of the exercise, creating
	// one when none exists.
	GetOrCreateOpenDaily(ctx context.Context, exerciseID string, userID string) (*domain.Daily, error)
	// FindDailyByID returns the daily or apperrors.ErrNotFound.
	FindDailyByID(ctx context.Context, dailyID string) (*domain.Daily, error)
	// CloseDaily sets the daily's end timestamp.
	CloseDaily(ctx context.Context, dailyID string, end time.Time, userID string) error
}

// ClosingLineBuilder derives the closing entry and audit record from the
// exercise's per-account activity. The repository calls it with activity
// aggregated inside the closing transaction, after the exercise row is
// locked, so no concurrent post can slip between aggregation and close.
type ClosingLineBuilder func(rows []domain.TrialBalanceRow) (domain.JournalEntry, []domain.JournalEntryLine, domain.ExerciseClosing, error)

// OpeningLineBuilder derives the carry-forward entry from the closed
// exercise's per-account activity, aggregated inside the opening
// transaction.
type OpeningLineBuilder func(rows []domain.TrialBalanceRow) (domain.JournalEntry, []domain.JournalEntryLine, error)

// ClosingRepository executes the multi-step closing and opening writes, each
// as a single transaction.
type ClosingRepository interface {
	// CloseExercise re-checks that the exercise is still open (locking its
	// row), aggregates its account activity, builds the closing entry via
	// the callback, stamps the exercise's end date and writes the
	// ExerciseClosing audit record. Everything happens in one transaction;
	// a concurrent close gets apperrors.ErrConflict.
	CloseExercise(ctx context.Context, exerciseID string, end time.Time, build ClosingLineBuilder) (*domain.ExerciseClosing, error)

	// OpenNewExercise inserts the successor exercise, builds and posts the
	// opening entry from the closed exercise's activity and links the
	// closing record to both, in one transaction.
	OpenNewExercise(ctx context.Context, closingID string, newExercise domain.Exercise, build OpeningLineBuilder) (*domain.Exercise, error)

	// FindClosingByID returns the closing audit record.
	FindClosingByID(ctx context.Context, closingID string) (*domain.ExerciseClosing, error)
}
