package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalKind categorizes the origin of a journal entry.
type JournalKind string

const (
	JournalSales     JournalKind = "VE" // sales journal
	JournalPurchases JournalKind = "AC" // purchases journal
	JournalCash      JournalKind = "CA" // cash journal
	JournalBank      JournalKind = "BQ" // bank journal
	JournalMisc      JournalKind = "OD" // miscellaneous operations
	JournalClosing   JournalKind = "CL" // fiscal-year closing
	JournalOpening   JournalKind = "AN" // carry-forward opening
)

// balanceTolerance is the maximum accepted |debits - credits| per entry.
var balanceTolerance = decimal.NewFromFloat(0.01)

// JournalEntry is a voucher: a dated, referenced set of debit/credit lines
// that must balance. Entries are created atomically with all their lines and
// are append-only; corrections are new reversing entries.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`   // Primary key (UUID)
	Reference   string      `json:"reference"` // "<JOURNAL>-<YYYYMMDD>-<seq3>", unique
	Date        time.Time   `json:"date"`
	Description string      `json:"description"`
	Journal     JournalKind `json:"journal"`
	ExerciseID  string      `json:"exerciseID"`
	DailyID     *string     `json:"dailyID,omitempty"`
	IsValidated bool        `json:"isValidated"`

	// Optional back-references to the originating business object.
	SaleID    *int64 `json:"saleID,omitempty"`
	SupplyID  *int64 `json:"supplyID,omitempty"`
	ExpenseID *int64 `json:"expenseID,omitempty"`

	Lines []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// JournalEntryLine is one debit or credit against a single account. Exactly
// one of Debit/Credit is non-zero; a line is never both.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"` // Primary key (UUID)
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"` // Populated on reads via join
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`

	// Populated on account-scoped reads for display.
	EntryReference   string    `json:"entryReference,omitempty"`
	EntryDate        time.Time `json:"entryDate,omitempty"`
	EntryDescription string    `json:"entryDescription,omitempty"`

	AuditFields
}

// LineTotals returns the summed debit and credit sides of a set of lines.
func LineTotals(lines []JournalEntryLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether the entry's lines balance within tolerance.
func (e *JournalEntry) IsBalanced() bool {
	debit, credit := LineTotals(e.Lines)
	return debit.Sub(credit).Abs().LessThan(balanceTolerance)
}

// Total returns the entry's total, conventionally the sum of its debits.
func (e *JournalEntry) Total() decimal.Decimal {
	debit, _ := LineTotals(e.Lines)
	return debit
}
