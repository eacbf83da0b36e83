package accounting_test

import (
	"testing"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/shopledger/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSplitTax(t *testing.T) {
	testCases := []struct {
		name       string
		ttc        string
		rate       string
		expectedHT string
		expectedTx string
	}{
		{"standard rate on round amount", "1000", "19.25", "838", "162"},
		{"standard rate on odd amount", "1193", "19.25", "1000", "193"},
		{"ten percent", "110", "10", "100", "10"},
		{"amount below one unit of tax", "1", "19.25", "1", "0"},
		{"zero amount", "0", "19.25", "0", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rate := dec(tc.rate)
			ht, tax := accounting.SplitTax(dec(tc.ttc), &rate)
			assert.True(t, dec(tc.expectedHT).Equal(ht), "HT: want %s, got %s", tc.expectedHT, ht)
			assert.True(t, dec(tc.expectedTx).Equal(tax), "tax: want %s, got %s", tc.expectedTx, tax)
			// The decomposition must always reassemble exactly.
			assert.True(t, ht.Add(tax).Equal(dec(tc.ttc)))
		})
	}
}

func TestSplitTaxNilRate(t *testing.T) {
	ht, tax := accounting.SplitTax(dec("500"), nil)
	assert.True(t, dec("500").Equal(ht))
	assert.True(t, tax.IsZero())
}

func TestSplitTaxNonPositiveRate(t *testing.T) {
	zero := decimal.Zero
	ht, tax := accounting.SplitTax(dec("500"), &zero)
	assert.True(t, dec("500").Equal(ht))
	assert.True(t, tax.IsZero())
}

func TestNaturalBalance(t *testing.T) {
	testCases := []struct {
		name        string
		accountType domain.AccountType
		debit       string
		credit      string
		expected    string
	}{
		{"asset is debit minus credit", domain.Asset, "150", "50", "100"},
		{"expense is debit minus credit", domain.Expense, "80", "100", "-20"},
		{"liability is credit minus debit", domain.Liability, "30", "130", "100"},
		{"income is credit minus debit", domain.Income, "0", "75", "75"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			balance, err := accounting.NaturalBalance(tc.accountType, dec(tc.debit), dec(tc.credit))
			require.NoError(t, err)
			assert.True(t, dec(tc.expected).Equal(balance), "want %s, got %s", tc.expected, balance)
		})
	}
}

func TestNaturalBalanceUnknownType(t *testing.T) {
	_, err := accounting.NaturalBalance(domain.AccountType("EQUITY"), decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestTreasuryAccountCode(t *testing.T) {
	assert.Equal(t, accounting.CodeCash, accounting.TreasuryAccountCode(domain.PaymentCash))
	assert.Equal(t, accounting.CodeMobileMoney, accounting.TreasuryAccountCode(domain.PaymentMobileMoney))
	assert.Equal(t, accounting.CodeBank, accounting.TreasuryAccountCode(domain.PaymentBankTransfer))
	assert.Equal(t, accounting.CodeBank, accounting.TreasuryAccountCode(domain.PaymentCheck))
	// Unknown methods fall back to cash.
	assert.Equal(t, accounting.CodeCash, accounting.TreasuryAccountCode(domain.PaymentMethod("CRYPTO")))
}

func TestIsNominal(t *testing.T) {
	assert.True(t, accounting.IsNominal("601"))
	assert.True(t, accounting.IsNominal("701"))
	assert.False(t, accounting.IsNominal("411"))
	assert.False(t, accounting.IsNominal("521"))
	assert.False(t, accounting.IsNominal("12"))
}

func TestDefaultChartParentsFirst(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range accounting.DefaultChart {
		if spec.ParentCode != "" {
			assert.True(t, seen[spec.ParentCode], "parent %s of %s must be listed first", spec.ParentCode, spec.Code)
		}
		seen[spec.Code] = true
	}
}
