package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exercise is a fiscal year/period. A nil EndDate means the exercise is open;
// at most one open exercise exists at a time.
type Exercise struct {
	ExerciseID string     `json:"exerciseID"` // Primary key (UUID)
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	AuditFields
}

// IsOpen reports whether the exercise is still active.
func (e *Exercise) IsOpen() bool {
	return e.EndDate == nil
}

// Daily is a single trading-day session inside an exercise. Used to scope
// same-day reporting and deferred-VAT batching.
type Daily struct {
	DailyID    string     `json:"dailyID"` // Primary key (UUID)
	ExerciseID string     `json:"exerciseID"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	AuditFields
}

// IsOpen reports whether the daily session is still open.
func (d *Daily) IsOpen() bool {
	return d.EndDate == nil
}

// ExerciseClosing is the audit record written once per closed exercise. It
// links the closing entry, and after the successor period is opened, the
// opening entry and new exercise.
type ExerciseClosing struct {
	ClosingID      string          `json:"closingID"` // Primary key (UUID)
	ExerciseID     string          `json:"exerciseID"`
	ClosedAt       time.Time       `json:"closedAt"`
	ClosedBy       string          `json:"closedBy"`
	ResultAmount   decimal.Decimal `json:"resultAmount"` // Profit if positive, loss if negative
	ClosingEntryID *string         `json:"closingEntryID,omitempty"`
	OpeningEntryID *string         `json:"openingEntryID,omitempty"`
	NewExerciseID  *string         `json:"newExerciseID,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}
