package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's activity: total debits, total credits and
// the signed balance under the account-type convention.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerLine is one general-ledger row with its cumulative running balance.
type LedgerLine struct {
	Line           JournalEntryLine `json:"line"`
	RunningBalance decimal.Decimal  `json:"runningBalance"`
}

// IncomeStatement is the charges/revenues breakdown for a period.
type IncomeStatement struct {
	Charges       []TrialBalanceRow `json:"charges"`
	Revenues      []TrialBalanceRow `json:"revenues"`
	TotalCharges  decimal.Decimal   `json:"totalCharges"`
	TotalRevenues decimal.Decimal   `json:"totalRevenues"`
	NetResult     decimal.Decimal   `json:"netResult"`
	IsProfit      bool              `json:"isProfit"`
}

// BalanceSheetItem is an account with its absolute balance on one side of
// the balance sheet.
type BalanceSheetItem struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"` // Absolute value
}

// BalanceSheet groups asset accounts against liability/equity accounts.
// TotalAssets must equal TotalLiabilities at all times (the net result is
// folded into the liability side when positive).
type BalanceSheet struct {
	FixedAssets       []BalanceSheetItem `json:"fixedAssets"`       // Class 2
	CurrentAssets     []BalanceSheetItem `json:"currentAssets"`     // Classes 3-4
	TreasuryAssets    []BalanceSheetItem `json:"treasuryAssets"`    // Class 5
	Equity            []BalanceSheetItem `json:"equity"`            // Class 1
	Payables          []BalanceSheetItem `json:"payables"`          // Class 4
	TreasuryLiability []BalanceSheetItem `json:"treasuryLiability"` // Class 5

	TotalFixedAssets    decimal.Decimal `json:"totalFixedAssets"`
	TotalCurrentAssets  decimal.Decimal `json:"totalCurrentAssets"`
	TotalTreasuryAssets decimal.Decimal `json:"totalTreasuryAssets"`
	TotalAssets         decimal.Decimal `json:"totalAssets"`

	TotalEquity            decimal.Decimal `json:"totalEquity"`
	TotalPayables          decimal.Decimal `json:"totalPayables"`
	TotalTreasuryLiability decimal.Decimal `json:"totalTreasuryLiability"`
	NetResult              decimal.Decimal `json:"netResult"`
	TotalLiabilities       decimal.Decimal `json:"totalLiabilities"`
}

// AgedBalanceKind selects receivables or payables for the aged report.
type AgedBalanceKind string

const (
	AgedClients   AgedBalanceKind = "client"
	AgedSuppliers AgedBalanceKind = "supplier"
)

// AgedBucketLabels are the aging brackets, oldest last.
var AgedBucketLabels = []string{"0-30", "31-60", "61-90", "90+"}

// AgedItem is one outstanding receivable or payable.
type AgedItem struct {
	Reference string          `json:"reference"`
	Party     string          `json:"party"`
	Date      time.Time       `json:"date"`
	DueDate   *time.Time      `json:"dueDate,omitempty"`
	AgeDays   int             `json:"ageDays"`
	Bucket    string          `json:"bucket"`
	Amount    decimal.Decimal `json:"amount"`
}

// AgedBalance is the bucketed aging report.
type AgedBalance struct {
	Kind       AgedBalanceKind            `json:"kind"`
	Items      []AgedItem                 `json:"items"`
	Buckets    map[string]decimal.Decimal `json:"buckets"`
	GrandTotal decimal.Decimal            `json:"grandTotal"`
}

// CreditSaleOutstanding is an unpaid or partially-paid credit sale as read
// from the sales collaborator tables.
type CreditSaleOutstanding struct {
	SaleID          int64           `json:"saleID"`
	ClientName      string          `json:"clientName"`
	SaleDate        time.Time       `json:"saleDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	AmountRemaining decimal.Decimal `json:"amountRemaining"`
}

// ProductMargin is one product's revenue/cost/margin row.
type ProductMargin struct {
	ProductID   int64           `json:"productID"`
	ProductName string          `json:"productName"`
	QtySold     decimal.Decimal `json:"qtySold"`
	Revenue     decimal.Decimal `json:"revenue"`
	UnitCost    decimal.Decimal `json:"unitCost"` // Last purchase price
	Cost        decimal.Decimal `json:"cost"`
	Margin      decimal.Decimal `json:"margin"`
	MarginPct   decimal.Decimal `json:"marginPct"`
}

// ProductMarginReport is the per-product margin report, sorted by descending
// margin.
type ProductMarginReport struct {
	Items        []ProductMargin `json:"items"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalMargin  decimal.Decimal `json:"totalMargin"`
}

// VATMonth is one month of the VAT declaration breakdown.
type VATMonth struct {
	Year       int             `json:"year"`
	Month      time.Month      `json:"month"`
	Collected  decimal.Decimal `json:"collected"`
	Deductible decimal.Decimal `json:"deductible"`
	Due        decimal.Decimal `json:"due"`
}

// VATDeclaration aggregates collected vs deductible VAT over a period.
type VATDeclaration struct {
	Collected  decimal.Decimal `json:"collected"`
	Deductible decimal.Decimal `json:"deductible"`
	NetDue     decimal.Decimal `json:"netDue"`
	Monthly    []VATMonth      `json:"monthly"`
}

// BankReconciliation is the reconciliation view for one treasury account.
type BankReconciliation struct {
	AccountCode string `json:"accountCode"`

	Statements  []BankStatement    `json:"statements"`
	LedgerLines []JournalEntryLine `json:"ledgerLines"`

	BankBalance decimal.Decimal `json:"bankBalance"` // statement credits - debits
	BookBalance decimal.Decimal `json:"bookBalance"` // ledger debits - credits
	Discrepancy decimal.Decimal `json:"discrepancy"` // bank - book

	UnreconciledStatements []BankStatement    `json:"unreconciledStatements"`
	UnreconciledLines      []JournalEntryLine `json:"unreconciledLines"`
	ReconciledCount        int                `json:"reconciledCount"`
	TotalCount             int                `json:"totalCount"`
}
