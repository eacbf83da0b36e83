package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Expense   AccountType = "EXPENSE"
	Income    AccountType = "INCOME"
)

// Account is one entry of the chart of accounts. Accounts are keyed by their
// chart code ("571" sits under "57"); the code determines both the account's
// type and its position in the hierarchy. Balances are never stored on the
// account — they are always recomputed from validated ledger lines.
type Account struct {
	AccountID   string      `json:"accountID"`  // Primary key (UUID)
	Code        string      `json:"code"`       // Unique chart code, hierarchical by prefix
	Name        string      `json:"name"`       // Display name
	AccountType AccountType `json:"accountType"`
	ParentCode  string      `json:"parentCode"` // Empty for top-level accounts
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
