package accounting

import (
	"strings"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
)

// Account roles used by the posting rules. The chart follows the OHADA
// convention: class 1 equity, 2 fixed assets, 3 inventory, 4 third parties,
// 5 treasury, 6 expenses, 7 income. Changing the chart means changing these
// constants, not the posting functions.
const (
	CodeResult          = "12"   // Current-year result
	CodeRetainedProfit  = "131"  // Retained earnings, credit balance
	CodeRetainedLoss    = "139"  // Retained earnings, debit balance
	CodeInventory       = "31"   // Merchandise inventory
	CodeSuppliers       = "401"  // Accounts payable
	CodeClients         = "411"  // Accounts receivable
	CodeVATCollected    = "4431" // VAT collected on sales
	CodeVATDeductible   = "4451" // VAT deductible on purchases
	CodeVATDue          = "4441" // Net VAT due
	CodeBank            = "521"  // Local bank
	CodeCash            = "571"  // Main cash register
	CodeMobileMoney     = "585"  // Mobile money
	CodePurchases       = "601"  // Merchandise purchases
	CodeDefaultExpense  = "65"   // Other expenses
	CodeSales           = "701"  // Merchandise sales
	CodeDefaultIncome   = "75"   // Other income
	ExpenseClassPrefix  = "6"
	IncomeClassPrefix   = "7"
)

// treasuryAccountByMethod maps a payment method to its treasury account.
var treasuryAccountByMethod = map[domain.PaymentMethod]string{
	domain.PaymentCash:         CodeCash,
	domain.PaymentMobileMoney:  CodeMobileMoney,
	domain.PaymentBankTransfer: CodeBank,
	domain.PaymentCheck:        CodeBank,
}

// TreasuryAccountCode returns the treasury account code for a payment
// method, falling back to the cash account for unmapped methods.
func TreasuryAccountCode(method domain.PaymentMethod) string {
	if code, ok := treasuryAccountByMethod[method]; ok {
		return code
	}
	return CodeCash
}

// IsExpenseCode reports whether a code belongs to the expense class.
func IsExpenseCode(code string) bool {
	return strings.HasPrefix(code, ExpenseClassPrefix)
}

// IsIncomeCode reports whether a code belongs to the income class.
func IsIncomeCode(code string) bool {
	return strings.HasPrefix(code, IncomeClassPrefix)
}

// IsNominal reports whether a code belongs to the expense or income classes,
// i.e. is zeroed out at exercise closing rather than carried forward.
func IsNominal(code string) bool {
	return IsExpenseCode(code) || IsIncomeCode(code)
}

// AccountSpec is one row of the default chart of accounts.
type AccountSpec struct {
	Code       string
	Name       string
	Type       domain.AccountType
	ParentCode string
}

// DefaultChart is the fixed set of accounts installed by chart
// initialization. Parents are listed before their children so a single
// ordered pass can resolve the hierarchy.
var DefaultChart = []AccountSpec{
	// Class 1 - equity
	{CodeResult, "Resultat de l'exercice", domain.Liability, ""},
	{"13", "Report a nouveau", domain.Liability, ""},
	{CodeRetainedProfit, "Report a nouveau (solde crediteur)", domain.Liability, "13"},
	{CodeRetainedLoss, "Report a nouveau (solde debiteur)", domain.Asset, "13"},
	// Class 3 - inventory
	{CodeInventory, "Stocks de marchandises", domain.Asset, ""},
	// Class 4 - third parties
	{CodeSuppliers, "Fournisseurs", domain.Liability, ""},
	{CodeClients, "Clients", domain.Asset, ""},
	{"443", "Etat, TVA facturee", domain.Liability, ""},
	{CodeVATCollected, "TVA facturee sur ventes", domain.Liability, "443"},
	{"445", "Etat, TVA recuperable", domain.Asset, ""},
	{CodeVATDeductible, "TVA recuperable sur achats", domain.Asset, "445"},
	{CodeVATDue, "Etat, TVA due", domain.Liability, ""},
	// Class 5 - treasury
	{"52", "Banques", domain.Asset, ""},
	{CodeBank, "Banque locale", domain.Asset, "52"},
	{"57", "Caisse", domain.Asset, ""},
	{CodeCash, "Caisse principale", domain.Asset, "57"},
	{"58", "Virements internes", domain.Asset, ""},
	{CodeMobileMoney, "Mobile Money", domain.Asset, "58"},
	// Class 6 - expenses
	{CodePurchases, "Achats de marchandises", domain.Expense, ""},
	{"6031", "Variations de stocks de marchandises", domain.Expense, ""},
	{"61", "Transports", domain.Expense, ""},
	{"62", "Services exterieurs", domain.Expense, ""},
	{"63", "Autres services exterieurs", domain.Expense, ""},
	{"64", "Charges de personnel", domain.Expense, ""},
	{CodeDefaultExpense, "Autres charges", domain.Expense, ""},
	// Class 7 - income
	{CodeSales, "Ventes de marchandises", domain.Income, ""},
	{"71", "Production stockee", domain.Income, ""},
	{CodeDefaultIncome, "Autres produits", domain.Income, ""},
	{"758", "Produits divers", domain.Income, ""},
}
