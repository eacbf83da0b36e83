package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Expense   AccountType = "EXPENSE"
	Income    AccountType = "INCOME"
)

// Account represents a chart of accounts row.
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	ParentCode  string      `db:"parent_code"` // empty when top-level
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}
