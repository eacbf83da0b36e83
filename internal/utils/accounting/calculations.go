package accounting

import (
	"fmt"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// SplitTax decomposes a tax-inclusive amount into its net (HT) and tax parts
// for a percentage rate. The net amount is truncated to the whole currency
// unit and the tax is derived as the exact remainder, so HT + tax == TTC
// always holds and the tax share is never understated. A nil or non-positive
// rate yields (TTC, 0).
func SplitTax(amountTTC decimal.Decimal, rate *decimal.Decimal) (ht, tax decimal.Decimal) {
	if rate == nil || rate.LessThanOrEqual(decimal.Zero) {
		return amountTTC, decimal.Zero
	}
	divisor := one.Add(rate.Div(hundred))
	ht = amountTTC.Div(divisor).RoundDown(0)
	tax = amountTTC.Sub(ht)
	return ht, tax
}

// NaturalBalance returns the signed balance of an account given its summed
// debits and credits: debit-credit for ASSET/EXPENSE accounts, credit-debit
// for LIABILITY/INCOME accounts. Every place that displays or compares a
// balance must go through this one convention.
func NaturalBalance(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return totalDebit.Sub(totalCredit), nil
	case domain.Liability, domain.Income:
		return totalCredit.Sub(totalDebit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// DebitLine builds a debit-only line against an account.
func DebitLine(account domain.Account, amount decimal.Decimal, description string) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		AccountID:   account.AccountID,
		AccountCode: account.Code,
		Debit:       amount,
		Credit:      decimal.Zero,
		Description: description,
	}
}

// CreditLine builds a credit-only line against an account.
func CreditLine(account domain.Account, amount decimal.Decimal, description string) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		AccountID:   account.AccountID,
		AccountCode: account.Code,
		Debit:       decimal.Zero,
		Credit:      amount,
		Description: description,
	}
}
