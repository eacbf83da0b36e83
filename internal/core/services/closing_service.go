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

type closingService struct {
	BaseService
	closingRepo portsrepo.ClosingRepository
	periodRepo  portsrepo.PeriodRepository
	accountRepo portsrepo.AccountReader
}

// NewClosingService creates the fiscal-year closing service.
func NewClosingService(
	closingRepo portsrepo.ClosingRepository,
	periodRepo portsrepo.PeriodRepository,
	accountRepo portsrepo.AccountReader,
) portssvc.ClosingSvcFacade {
	return &closingService{
		closingRepo: closingRepo,
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// CloseExercise zeroes every nominal account into the result account and
// stamps the exercise closed. The whole operation is one transaction in
// the repository; a concurrent close loses with a conflict.
func (s *closingService) CloseExercise(ctx context.Context, exerciseID string, notes string, userID string) (*domain.ExerciseClosing, error) {
	exercise, err := s.periodRepo.FindExerciseByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if !exercise.IsOpen() {
		return nil, fmt.Errorf("%w: exercise %s is already closed", apperrors.ErrConflict, exerciseID)
	}

	now := time.Now()
	// The builder runs inside the closing transaction, over activity
	// aggregated under the exercise row lock.
	build := func(rows []domain.TrialBalanceRow) (domain.JournalEntry, []domain.JournalEntryLine, domain.ExerciseClosing, error) {
		var none domain.JournalEntry
		result := decimal.Zero
		lines := []domain.JournalEntryLine{}
		description := "Cloture de l'exercice"
		for _, row := range rows {
			if !accounting.IsNominal(row.AccountCode) {
				continue
			}
			balance, err := accounting.NaturalBalance(row.AccountType, row.TotalDebit, row.TotalCredit)
			if err != nil {
				return none, nil, domain.ExerciseClosing{}, fmt.Errorf("account %s: %w", row.AccountCode, err)
			}
			if balance.IsZero() {
				continue
			}

			account := domain.Account{AccountID: row.AccountID, Code: row.AccountCode}
			if row.AccountType == domain.Expense {
				// Expenses carry a debit balance; credit them closed.
				if balance.IsPositive() {
					lines = append(lines, accounting.CreditLine(account, balance, description))
				} else {
					lines = append(lines, accounting.DebitLine(account, balance.Neg(), description))
				}
				result = result.Sub(balance)
			} else {
				// Income carries a credit balance; debit it closed.
				if balance.IsPositive() {
					lines = append(lines, accounting.DebitLine(account, balance, description))
				} else {
					lines = append(lines, accounting.CreditLine(account, balance.Neg(), description))
				}
				result = result.Add(balance)
			}
		}

		var entry domain.JournalEntry
		if len(lines) > 0 {
			resultAccount, err := s.accountRepo.FindAccountByCode(ctx, accounting.CodeResult)
			if err != nil {
				return none, nil, domain.ExerciseClosing{}, fmt.Errorf("%w: result account %s", apperrors.ErrConfiguration, accounting.CodeResult)
			}
			switch {
			case result.IsPositive():
				lines = append(lines, accounting.CreditLine(*resultAccount, result, description))
			case result.IsNegative():
				lines = append(lines, accounting.DebitLine(*resultAccount, result.Neg(), description))
			}
			entry, lines = newEntry(domain.JournalClosing, description, exerciseID, nil, userID, lines)
		}

		closing := domain.ExerciseClosing{
			ClosingID:    uuid.NewString(),
			ExerciseID:   exerciseID,
			ClosedAt:     now,
			ClosedBy:     userID,
			ResultAmount: result,
			Notes:        notes,
		}
		return entry, lines, closing, nil
	}

	created, err := s.closingRepo.CloseExercise(ctx, exerciseID, now, build)
	if err != nil {
		s.LogError(ctx, err, "failed to close exercise", "exerciseID", exerciseID)
		return nil, err
	}
	s.LogInfo(ctx, "exercise closed", "exerciseID", exerciseID, "result", created.ResultAmount.String())
	return created, nil
}

// OpenNewExercise opens the successor exercise and posts the opening
// entry: carried accounts keep their balances, while the closed result
// moves to retained earnings.
func (s *closingService) OpenNewExercise(ctx context.Context, closingID string, userID string) (*domain.Exercise, error) {
	closing, err := s.closingRepo.FindClosingByID(ctx, closingID)
	if err != nil {
		return nil, err
	}
	if closing.NewExerciseID != nil {
		return nil, fmt.Errorf("%w: closing %s already opened exercise %s", apperrors.ErrConflict, closingID, *closing.NewExerciseID)
	}

	retainedCode := accounting.CodeRetainedProfit
	if closing.ResultAmount.IsNegative() {
		retainedCode = accounting.CodeRetainedLoss
	}
	retained, err := s.accountRepo.FindAccountByCode(ctx, retainedCode)
	if err != nil {
		return nil, fmt.Errorf("%w: retained earnings account %s", apperrors.ErrConfiguration, retainedCode)
	}

	now := time.Now()
	newExercise := domain.Exercise{
		ExerciseID: uuid.NewString(),
		StartDate:  now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// The builder runs inside the opening transaction, over the closed
	// exercise's activity.
	build := func(rows []domain.TrialBalanceRow) (domain.JournalEntry, []domain.JournalEntryLine, error) {
		description := "Report a nouveau"
		lines := []domain.JournalEntryLine{}
		for _, row := range rows {
			if accounting.IsNominal(row.AccountCode) {
				// Zeroed by the closing entry; nothing to carry.
				continue
			}
			net := row.TotalDebit.Sub(row.TotalCredit)
			if net.IsZero() {
				continue
			}

			account := domain.Account{AccountID: row.AccountID, Code: row.AccountCode}
			if row.AccountCode == accounting.CodeResult {
				// The result does not carry forward as-is; it becomes
				// retained earnings.
				account = *retained
			}
			if net.IsPositive() {
				lines = append(lines, accounting.DebitLine(account, net, description))
			} else {
				lines = append(lines, accounting.CreditLine(account, net.Neg(), description))
			}
		}
		entry, lines := newEntry(domain.JournalOpening, description, newExercise.ExerciseID, nil, userID, lines)
		return entry, lines, nil
	}

	opened, err := s.closingRepo.OpenNewExercise(ctx, closingID, newExercise, build)
	if err != nil {
		s.LogError(ctx, err, "failed to open new exercise", "closingID", closingID)
		return nil, err
	}
	s.LogInfo(ctx, "new exercise opened", "exerciseID", opened.ExerciseID)
	return opened, nil
}
