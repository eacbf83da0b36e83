package dto

import (
	"time"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one line of a manually created entry. Accounts are
// addressed by chart code; exactly one of Debit/Credit must be positive.
type EntryLineRequest struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// CreateEntryRequest creates a miscellaneous journal entry with its lines.
type CreateEntryRequest struct {
	Date        time.Time          `json:"date"`
	Description string             `json:"description"`
	Journal     domain.JournalKind `json:"journal"`
	ExerciseID  string             `json:"exerciseID"`
	DailyID     *string            `json:"dailyID,omitempty"`
	Lines       []EntryLineRequest `json:"lines"`
}

// CreateTaxRateRequest registers a VAT rate.
type CreateTaxRateRequest struct {
	Name        string          `json:"name"`
	Rate        decimal.Decimal `json:"rate"`
	IsDefault   bool            `json:"isDefault"`
	Description string          `json:"description,omitempty"`
}
