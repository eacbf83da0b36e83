package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankStatement represents an imported bank statement row.
type BankStatement struct {
	StatementID      string          `db:"statement_id"`
	AccountID        string          `db:"account_id"`
	StatementDate    time.Time       `db:"statement_date"`
	Description      string          `db:"description"`
	Reference        string          `db:"reference"`
	Amount           decimal.Decimal `db:"amount"`
	Direction        string          `db:"direction"`
	IsReconciled     bool            `db:"is_reconciled"`
	ReconciledLineID *string         `db:"reconciled_line_id"`
	ReconciledAt     *time.Time      `db:"reconciled_at"`
	ReconciledBy     string          `db:"reconciled_by"`
	AuditFields
}
