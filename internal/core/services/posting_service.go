package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopledger/shop_ledger_app/internal/apperrors"
	"github.com/shopledger/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type postingService struct {
	BaseService
	entryRepo   portsrepo.EntryRepository
	accountRepo portsrepo.AccountReader
	saleRepo    portsrepo.SaleRepository
	taxRateRepo portsrepo.TaxRateRepository
}

// NewPostingService creates the service that turns shop events into
// journal entries.
func NewPostingService(
	entryRepo portsrepo.EntryRepository,
	accountRepo portsrepo.AccountReader,
	saleRepo portsrepo.SaleRepository,
	taxRateRepo portsrepo.TaxRateRepository,
) portssvc.PostingSvcFacade {
	return &postingService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		saleRepo:    saleRepo,
		taxRateRepo: taxRateRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// requireAccounts resolves role accounts by code. A missing role account
// is a configuration error, not a validation error: the chart was not
// initialized properly.
func (s *postingService) requireAccounts(ctx context.Context, codes ...string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	for _, code := range codes {
		if _, ok := accounts[code]; !ok {
			return nil, fmt.Errorf("%w: account %s is missing from the chart", apperrors.ErrConfiguration, code)
		}
	}
	return accounts, nil
}

// newEntry assembles an entry skeleton with fresh IDs and audit fields,
// stamping the lines with the entry ID.
func newEntry(journal domain.JournalKind, description string, exerciseID string, dailyID *string, userID string, lines []domain.JournalEntryLine) (domain.JournalEntry, []domain.JournalEntryLine) {
	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	entryID := uuid.NewString()
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
		lines[i].AuditFields = audit
	}
	entry := domain.JournalEntry{
		EntryID:     entryID,
		Date:        now,
		Description: description,
		Journal:     journal,
		ExerciseID:  exerciseID,
		DailyID:     dailyID,
		IsValidated: true,
		AuditFields: audit,
	}
	return entry, lines
}

// treasuryJournal picks the journal for a treasury movement: bank
// operations go to BQ, everything else to CA.
func treasuryJournal(method domain.PaymentMethod) domain.JournalKind {
	if accounting.TreasuryAccountCode(method) == accounting.CodeBank {
		return domain.JournalBank
	}
	return domain.JournalCash
}

// PostSale posts the sale entry against receivables for credit sales or
// the treasury account of the payment method otherwise. In immediate tax
// mode the revenue is split into net sales plus collected VAT; otherwise
// the full tax-inclusive total stays on the sales account until the
// daily closes.
func (s *postingService) PostSale(ctx context.Context, sale domain.SaleEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	if !sale.Total.IsPositive() {
		s.LogDebug(ctx, "skipping non-positive sale", "saleID", sale.SaleID)
		return nil, nil
	}

	applyNow := sale.ApplyTaxNow && sale.HasVAT
	net := sale.Total
	tax := decimal.Zero
	if applyNow {
		rate, err := s.taxRateRepo.FindDefaultTaxRate(ctx)
		if err != nil {
			return nil, err
		}
		if rate != nil {
			net, tax = accounting.SplitTax(sale.Total, &rate.Rate)
		}
	}

	debitCode := accounting.TreasuryAccountCode(sale.PaymentMethod)
	if sale.IsCredit {
		debitCode = accounting.CodeClients
	}
	codes := []string{debitCode, accounting.CodeSales}
	if tax.IsPositive() {
		codes = append(codes, accounting.CodeVATCollected)
	}
	accounts, err := s.requireAccounts(ctx, codes...)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Vente #%d", sale.SaleID)
	lines := []domain.JournalEntryLine{
		accounting.DebitLine(accounts[debitCode], sale.Total, description),
		accounting.CreditLine(accounts[accounting.CodeSales], net, description),
	}
	if tax.IsPositive() {
		lines = append(lines, accounting.CreditLine(accounts[accounting.CodeVATCollected], tax, description))
	}
	entry, lines := newEntry(domain.JournalSales, description, exerciseID, dailyID, userID, lines)
	entry.SaleID = &sale.SaleID

	created, err := s.entryRepo.CreateSaleEntry(ctx, entry, lines, applyNow)
	if err != nil {
		s.LogError(ctx, err, "failed to post sale", "saleID", sale.SaleID)
		return nil, err
	}
	s.LogInfo(ctx, "sale posted", "saleID", sale.SaleID, "reference", created.Reference, "taxNow", applyNow)
	return created, nil
}

// PostSupply posts a merchandise purchase: purchases are debited, against
// payables for credit supplies or treasury otherwise. When a tax rate is
// given the purchase is split into net purchases plus deductible VAT.
func (s *postingService) PostSupply(ctx context.Context, supply domain.SupplyEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	if !supply.Total.IsPositive() {
		s.LogDebug(ctx, "skipping non-positive supply", "supplyID", supply.SupplyID)
		return nil, nil
	}

	net := supply.Total
	tax := decimal.Zero
	if supply.TaxRate != nil {
		net, tax = accounting.SplitTax(supply.Total, supply.TaxRate)
	}

	creditCode := accounting.TreasuryAccountCode(supply.PaymentMethod)
	if supply.IsCredit {
		creditCode = accounting.CodeSuppliers
	}
	codes := []string{accounting.CodePurchases, creditCode}
	if tax.IsPositive() {
		codes = append(codes, accounting.CodeVATDeductible)
	}
	accounts, err := s.requireAccounts(ctx, codes...)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Achat %s", supply.ProductName)
	lines := []domain.JournalEntryLine{
		accounting.DebitLine(accounts[accounting.CodePurchases], net, description),
	}
	if tax.IsPositive() {
		lines = append(lines, accounting.DebitLine(accounts[accounting.CodeVATDeductible], tax, description))
	}
	lines = append(lines, accounting.CreditLine(accounts[creditCode], supply.Total, description))
	entry, lines := newEntry(domain.JournalPurchases, description, exerciseID, dailyID, userID, lines)
	entry.SupplyID = &supply.SupplyID

	created, err := s.entryRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "failed to post supply", "supplyID", supply.SupplyID)
		return nil, err
	}
	s.LogInfo(ctx, "supply posted", "supplyID", supply.SupplyID, "reference", created.Reference)
	return created, nil
}

// PostExpense posts an expense against its expense account, or the
// default expense class when no account is specified. The expense class
// prefix is enforced so an expense can never land on an income account.
func (s *postingService) PostExpense(ctx context.Context, expense domain.ExpenseEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	if !expense.Amount.IsPositive() {
		s.LogDebug(ctx, "skipping non-positive expense", "expenseID", expense.ExpenseID)
		return nil, nil
	}

	expenseCode := expense.AccountCode
	if expenseCode == "" || !accounting.IsExpenseCode(expenseCode) {
		expenseCode = accounting.CodeDefaultExpense
	}
	treasuryCode := accounting.TreasuryAccountCode(expense.PaymentMethod)
	accounts, err := s.requireAccounts(ctx, expenseCode, treasuryCode)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Depense: %s", expense.TypeName)
	if expense.Description != "" {
		description = fmt.Sprintf("Depense: %s - %s", expense.TypeName, expense.Description)
	}
	lines := []domain.JournalEntryLine{
		accounting.DebitLine(accounts[expenseCode], expense.Amount, description),
		accounting.CreditLine(accounts[treasuryCode], expense.Amount, description),
	}
	entry, lines := newEntry(treasuryJournal(expense.PaymentMethod), description, exerciseID, dailyID, userID, lines)
	entry.ExpenseID = &expense.ExpenseID

	created, err := s.entryRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "failed to post expense", "expenseID", expense.ExpenseID)
		return nil, err
	}
	s.LogInfo(ctx, "expense posted", "expenseID", expense.ExpenseID, "reference", created.Reference)
	return created, nil
}

// PostIncome posts a non-sale income against its income account, or the
// default income class when no account is specified.
func (s *postingService) PostIncome(ctx context.Context, income domain.IncomeEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	if !income.Amount.IsPositive() {
		s.LogDebug(ctx, "skipping non-positive income", "incomeID", income.IncomeID)
		return nil, nil
	}

	incomeCode := income.AccountCode
	if incomeCode == "" || !accounting.IsIncomeCode(incomeCode) {
		incomeCode = accounting.CodeDefaultIncome
	}
	treasuryCode := accounting.TreasuryAccountCode(income.PaymentMethod)
	accounts, err := s.requireAccounts(ctx, incomeCode, treasuryCode)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Recette: %s", income.TypeName)
	if income.Description != "" {
		description = fmt.Sprintf("Recette: %s - %s", income.TypeName, income.Description)
	}
	lines := []domain.JournalEntryLine{
		accounting.DebitLine(accounts[treasuryCode], income.Amount, description),
		accounting.CreditLine(accounts[incomeCode], income.Amount, description),
	}
	entry, lines := newEntry(treasuryJournal(income.PaymentMethod), description, exerciseID, dailyID, userID, lines)

	created, err := s.entryRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "failed to post income", "incomeID", income.IncomeID)
		return nil, err
	}
	s.LogInfo(ctx, "income posted", "incomeID", income.IncomeID, "reference", created.Reference)
	return created, nil
}

// PostClientPayment posts a payment received on a credit sale: treasury
// in, receivables out.
func (s *postingService) PostClientPayment(ctx context.Context, payment domain.ClientPaymentEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	if !payment.Amount.IsPositive() {
		s.LogDebug(ctx, "skipping non-positive client payment", "paymentID", payment.PaymentID)
		return nil, nil
	}

	treasuryCode := accounting.TreasuryAccountCode(payment.PaymentMethod)
	accounts, err := s.requireAccounts(ctx, treasuryCode, accounting.CodeClients)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Reglement client vente #%d", payment.SaleID)
	lines := []domain.JournalEntryLine{
		accounting.DebitLine(accounts[treasuryCode], payment.Amount, description),
		accounting.CreditLine(accounts[accounting.CodeClients], payment.Amount, description),
	}
	entry, lines := newEntry(treasuryJournal(payment.PaymentMethod), description, exerciseID, dailyID, userID, lines)

	created, err := s.entryRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "failed to post client payment", "paymentID", payment.PaymentID)
		return nil, err
	}
	s.LogInfo(ctx, "client payment posted", "paymentID", payment.PaymentID, "reference", created.Reference)
	return created, nil
}

// PostSupplierPayment posts a payment made to a supplier: payables down,
// treasury out.
func (s *postingService) PostSupplierPayment(ctx context.Context, payment domain.SupplierPaymentEvent, exerciseID string, dailyID *string, userID string) (*domain.JournalEntry, error) {
	if !payment.Amount.IsPositive() {
		s.LogDebug(ctx, "skipping non-positive supplier payment", "paymentID", payment.PaymentID)
		return nil, nil
	}

	treasuryCode := accounting.TreasuryAccountCode(payment.PaymentMethod)
	accounts, err := s.requireAccounts(ctx, accounting.CodeSuppliers, treasuryCode)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Reglement fournisseur %s", payment.SupplierName)
	lines := []domain.JournalEntryLine{
		accounting.DebitLine(accounts[accounting.CodeSuppliers], payment.Amount, description),
		accounting.CreditLine(accounts[treasuryCode], payment.Amount, description),
	}
	entry, lines := newEntry(treasuryJournal(payment.PaymentMethod), description, exerciseID, dailyID, userID, lines)

	created, err := s.entryRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "failed to post supplier payment", "paymentID", payment.PaymentID)
		return nil, err
	}
	s.LogInfo(ctx, "supplier payment posted", "paymentID", payment.PaymentID, "reference", created.Reference)
	return created, nil
}

// RecordDeferredVATForDaily extracts the VAT share out of the sales
// account for every taxable sale of the daily that has none recorded yet.
// Each sale gets its own entry so a failure on one sale does not block
// the rest; the per-sale flag makes the whole operation idempotent.
func (s *postingService) RecordDeferredVATForDaily(ctx context.Context, dailyID string, exerciseID string, userID string) (int, error) {
	rate, err := s.taxRateRepo.FindDefaultTaxRate(ctx)
	if err != nil {
		return 0, err
	}
	if rate == nil {
		s.LogInfo(ctx, "no default tax rate configured, skipping deferred VAT", "dailyID", dailyID)
		return 0, nil
	}

	sales, err := s.saleRepo.FindVATPendingSales(ctx, dailyID)
	if err != nil {
		return 0, err
	}
	if len(sales) == 0 {
		return 0, nil
	}

	accounts, err := s.requireAccounts(ctx, accounting.CodeSales, accounting.CodeVATCollected)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, sale := range sales {
		_, tax := accounting.SplitTax(sale.Total, &rate.Rate)
		if !tax.IsPositive() {
			if err := s.saleRepo.MarkVATRecorded(ctx, sale.SaleID); err != nil {
				return created, err
			}
			continue
		}

		description := fmt.Sprintf("TVA collectee vente #%d", sale.SaleID)
		lines := []domain.JournalEntryLine{
			accounting.DebitLine(accounts[accounting.CodeSales], tax, description),
			accounting.CreditLine(accounts[accounting.CodeVATCollected], tax, description),
		}
		entry, lines := newEntry(domain.JournalMisc, description, exerciseID, &dailyID, userID, lines)
		entry.SaleID = &sale.SaleID

		_, alreadyRecorded, err := s.entryRepo.CreateSaleVATEntry(ctx, sale.SaleID, entry, lines)
		if err != nil {
			s.LogError(ctx, err, "failed to record deferred VAT", "saleID", sale.SaleID)
			return created, err
		}
		if !alreadyRecorded {
			created++
		}
	}
	s.LogInfo(ctx, "deferred VAT recorded", "dailyID", dailyID, "entries", created)
	return created, nil
}

// PendingAccounting returns sales whose entry was never posted.
func (s *postingService) PendingAccounting(ctx context.Context) ([]domain.PendingSale, error) {
	return s.saleRepo.ListPendingAccounting(ctx)
}
