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
	"github.com/shopspring/decimal"
)

type reconciliationService struct {
	BaseService
	bankRepo    portsrepo.BankStatementRepository
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.EntryRepository
}

// NewReconciliationService creates the bank reconciliation service.
func NewReconciliationService(
	bankRepo portsrepo.BankStatementRepository,
	accountRepo portsrepo.AccountReader,
	entryRepo portsrepo.EntryRepository,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// ImportStatements validates and stores imported statement lines against
// a treasury account.
func (s *reconciliationService) ImportStatements(ctx context.Context, accountCode string, statements []domain.StatementImport, userID string) (int, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	rows := make([]domain.BankStatement, 0, len(statements))
	for i, imp := range statements {
		if !imp.Amount.IsPositive() {
			return 0, fmt.Errorf("%w: statement %d has a non-positive amount", apperrors.ErrValidation, i+1)
		}
		if imp.Direction != domain.StatementCredit && imp.Direction != domain.StatementDebit {
			return 0, fmt.Errorf("%w: statement %d has unknown direction %q", apperrors.ErrValidation, i+1, imp.Direction)
		}
		rows = append(rows, domain.BankStatement{
			StatementID:   uuid.NewString(),
			AccountID:     account.AccountID,
			AccountCode:   account.Code,
			StatementDate: imp.Date,
			Description:   imp.Description,
			Reference:     imp.Reference,
			Amount:        imp.Amount,
			Direction:     imp.Direction,
			AuditFields:   audit,
		})
	}

	count, err := s.bankRepo.BulkInsertStatements(ctx, rows)
	if err != nil {
		s.LogError(ctx, err, "failed to import statements", "account", accountCode)
		return 0, err
	}
	s.LogInfo(ctx, "statements imported", "account", accountCode, "count", count)
	return count, nil
}

// Reconciliation builds the reconciliation view: bank balance from the
// statements, book balance from the ledger, and the unmatched rows on
// both sides.
func (s *reconciliationService) Reconciliation(ctx context.Context, accountCode string, exerciseID *string, dateRange portsrepo.DateRange) (*domain.BankReconciliation, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, err
	}
	statements, err := s.bankRepo.FindStatementsByAccount(ctx, account.AccountID, dateRange)
	if err != nil {
		return nil, err
	}
	lines, err := s.entryRepo.FindLinesByAccount(ctx, account.AccountID, exerciseID)
	if err != nil {
		return nil, err
	}

	view := &domain.BankReconciliation{
		AccountCode: account.Code,
		Statements:  statements,
		LedgerLines: lines,
		TotalCount:  len(statements),
	}

	matchedLineIDs := make(map[string]bool)
	for _, st := range statements {
		if st.Direction == domain.StatementCredit {
			view.BankBalance = view.BankBalance.Add(st.Amount)
		} else {
			view.BankBalance = view.BankBalance.Sub(st.Amount)
		}
		if st.IsReconciled {
			view.ReconciledCount++
			if st.ReconciledLineID != nil {
				matchedLineIDs[*st.ReconciledLineID] = true
			}
		} else {
			view.UnreconciledStatements = append(view.UnreconciledStatements, st)
		}
	}
	for _, line := range lines {
		view.BookBalance = view.BookBalance.Add(line.Debit).Sub(line.Credit)
		if !matchedLineIDs[line.LineID] {
			view.UnreconciledLines = append(view.UnreconciledLines, line)
		}
	}
	view.Discrepancy = view.BankBalance.Sub(view.BookBalance)
	return view, nil
}

// Reconcile matches a statement line against a ledger line of the same
// account. Amount and direction must agree: money in on the statement
// matches a debit on the treasury account.
func (s *reconciliationService) Reconcile(ctx context.Context, statementID string, ledgerLineID string, userID string) error {
	statement, err := s.bankRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		return err
	}
	if statement.IsReconciled {
		return fmt.Errorf("%w: statement %s is already reconciled", apperrors.ErrConflict, statementID)
	}

	lines, err := s.entryRepo.FindLinesByAccount(ctx, statement.AccountID, nil)
	if err != nil {
		return err
	}
	var match *domain.JournalEntryLine
	for i := range lines {
		if lines[i].LineID == ledgerLineID {
			match = &lines[i]
			break
		}
	}
	if match == nil {
		return fmt.Errorf("%w: ledger line %s on statement's account", apperrors.ErrNotFound, ledgerLineID)
	}

	var lineAmount decimal.Decimal
	if statement.Direction == domain.StatementCredit {
		lineAmount = match.Debit
	} else {
		lineAmount = match.Credit
	}
	if !lineAmount.Equal(statement.Amount) {
		return fmt.Errorf("%w: statement amount %s does not match line amount %s",
			apperrors.ErrValidation, statement.Amount, lineAmount)
	}

	if err := s.bankRepo.MarkReconciled(ctx, statementID, ledgerLineID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to reconcile statement", "statementID", statementID)
		return err
	}
	s.LogInfo(ctx, "statement reconciled", "statementID", statementID, "lineID", ledgerLineID)
	return nil
}

// Unreconcile clears a statement's match.
func (s *reconciliationService) Unreconcile(ctx context.Context, statementID string) error {
	return s.bankRepo.MarkUnreconciled(ctx, statementID)
}
