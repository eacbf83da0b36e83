package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business events are the inputs to the posting rules. They are supplied by
// the surrounding sale/inventory/expense modules; the engine only derives
// balanced entries from them and flips completion flags.

// SaleEvent is a completed sale, tax-inclusive. ApplyTaxNow selects the
// immediate posting mode: the sale entry splits revenue into net and
// collected VAT right away instead of waiting for the daily close.
type SaleEvent struct {
	SaleID        int64           `json:"saleID"`
	Total         decimal.Decimal `json:"total"` // TTC
	IsCredit      bool            `json:"isCredit"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	HasVAT        bool            `json:"hasVAT"`
	ApplyTaxNow   bool            `json:"applyTaxNow"`
}

// SupplyEvent is a received purchase/supply, tax-inclusive. A non-nil
// TaxRate splits the purchase into net plus deductible VAT.
type SupplyEvent struct {
	SupplyID      int64            `json:"supplyID"`
	ProductName   string           `json:"productName"`
	Total         decimal.Decimal  `json:"total"` // TTC
	IsCredit      bool             `json:"isCredit"`
	PaymentMethod PaymentMethod    `json:"paymentMethod"`
	TaxRate       *decimal.Decimal `json:"taxRate,omitempty"` // percentage
}

// ExpenseEvent is an approved expense. AccountCode optionally selects a
// specific expense account; empty means the default expense class.
type ExpenseEvent struct {
	ExpenseID     int64           `json:"expenseID"`
	Amount        decimal.Decimal `json:"amount"`
	TypeName      string          `json:"typeName"`
	Description   string          `json:"description"`
	AccountCode   string          `json:"accountCode,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// IncomeEvent is a recorded non-sale income (recette). AccountCode optionally
// selects a specific income account; empty means the default income class.
type IncomeEvent struct {
	IncomeID      int64           `json:"incomeID"`
	Amount        decimal.Decimal `json:"amount"`
	TypeName      string          `json:"typeName"`
	Description   string          `json:"description"`
	AccountCode   string          `json:"accountCode,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// ClientPaymentEvent is a payment received against a credit sale.
type ClientPaymentEvent struct {
	PaymentID     int64           `json:"paymentID"`
	SaleID        int64           `json:"saleID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// SupplierPaymentEvent is a payment made to a supplier.
type SupplierPaymentEvent struct {
	PaymentID     int64           `json:"paymentID"`
	SupplierName  string          `json:"supplierName"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// PendingSale is a business row whose accounting side-effect has not been
// posted yet, surfaced for retry and audit.
type PendingSale struct {
	SaleID    int64           `json:"saleID"`
	DailyID   string          `json:"dailyID"`
	Total     decimal.Decimal `json:"total"`
	IsCredit  bool            `json:"isCredit"`
	HasVAT    bool            `json:"hasVAT"`
	CreatedAt time.Time       `json:"createdAt"`
}

// VATPendingSale is a sale flagged as taxable whose deferred VAT entry has
// not been recorded yet.
type VATPendingSale struct {
	SaleID int64           `json:"saleID"`
	Total  decimal.Decimal `json:"total"` // TTC
}
