package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a journal entry header row.
type JournalEntry struct {
	EntryID     string     `db:"entry_id"`
	Reference   string     `db:"reference"`
	EntryDate   time.Time  `db:"entry_date"`
	Description string     `db:"description"`
	Journal     string     `db:"journal"`
	ExerciseID  string     `db:"exercise_id"`
	DailyID     *string    `db:"daily_id"`
	IsValidated bool       `db:"is_validated"`
	ValidatedAt *time.Time `db:"validated_at"`
	SaleID      *int64     `db:"sale_id"`
	SupplyID    *int64     `db:"supply_id"`
	ExpenseID   *int64     `db:"expense_id"`
	AuditFields
}

// JournalEntryLine represents one debit or credit line of an entry.
type JournalEntryLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	AuditFields
}
