package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exercise represents a fiscal year row.
type Exercise struct {
	ExerciseID string     `db:"exercise_id"`
	StartDate  time.Time  `db:"start_date"`
	EndDate    *time.Time `db:"end_date"`
	AuditFields
}

// Daily represents a daily session row within an exercise.
type Daily struct {
	DailyID    string     `db:"daily_id"`
	ExerciseID string     `db:"exercise_id"`
	StartDate  time.Time  `db:"start_date"`
	EndDate    *time.Time `db:"end_date"`
	AuditFields
}

// ExerciseClosing records the outcome of closing an exercise.
type ExerciseClosing struct {
	ClosingID      string          `db:"closing_id"`
	ExerciseID     string          `db:"exercise_id"`
	ClosedAt       time.Time       `db:"closed_at"`
	ClosedBy       string          `db:"closed_by"`
	ResultAmount   decimal.Decimal `db:"result_amount"`
	ClosingEntryID *string         `db:"closing_entry_id"`
	OpeningEntryID *string         `db:"opening_entry_id"`
	NewExerciseID  *string         `db:"new_exercise_id"`
	Notes          string          `db:"notes"`
}
