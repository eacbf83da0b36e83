package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementDirection tags an imported bank-statement line as money in or out.
type StatementDirection string

const (
	StatementCredit StatementDirection = "CREDIT"
	StatementDebit  StatementDirection = "DEBIT"
)

// BankStatement is one imported bank-statement line, matched during
// reconciliation against a ledger line on the same treasury account.
type BankStatement struct {
	StatementID   string             `json:"statementID"` // Primary key (UUID)
	AccountID     string             `json:"accountID"`
	AccountCode   string             `json:"accountCode"`
	StatementDate time.Time          `json:"statementDate"`
	Description   string             `json:"description"`
	Reference     string             `json:"reference"`
	Amount        decimal.Decimal    `json:"amount"`
	Direction     StatementDirection `json:"direction"`

	IsReconciled     bool       `json:"isReconciled"`
	ReconciledLineID *string    `json:"reconciledLineID,omitempty"`
	ReconciledAt     *time.Time `json:"reconciledAt,omitempty"`
	ReconciledBy     string     `json:"reconciledBy,omitempty"`
	AuditFields
}

// StatementImport is the caller-supplied shape of one line to import.
type StatementImport struct {
	Date        time.Time          `json:"date"`
	Description string             `json:"description"`
	Reference   string             `json:"reference,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
	Direction   StatementDirection `json:"direction"`
}
