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
	"github.com/shopledger/shop_ledger_app/internal/dto"
)

type ledgerService struct {
	BaseService
	entryRepo   portsrepo.EntryRepository
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates the journal entry service.
func NewLedgerService(entryRepo portsrepo.EntryRepository, accountRepo portsrepo.AccountReader) portssvc.LedgerSvcFacade {
	return &ledgerService{entryRepo: entryRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateEntry validates and persists a manual journal entry.
func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: an entry needs at least two lines", apperrors.ErrValidation)
	}
	if req.Journal == "" {
		return nil, fmt.Errorf("%w: journal is required", apperrors.ErrValidation)
	}
	if req.ExerciseID == "" {
		return nil, fmt.Errorf("%w: exercise is required", apperrors.ErrValidation)
	}

	codes := make([]string, 0, len(req.Lines))
	for i, line := range req.Lines {
		if line.AccountCode == "" {
			return nil, fmt.Errorf("%w: line %d has no account code", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			return nil, fmt.Errorf("%w: line %d must have exactly one of debit or credit set", apperrors.ErrValidation, i+1)
		}
		codes = append(codes, line.AccountCode)
	}

	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	entryID := uuid.NewString()
	lines := make([]domain.JournalEntryLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		account, ok := accounts[line.AccountCode]
		if !ok {
			return nil, fmt.Errorf("%w: unknown account code %s", apperrors.ErrValidation, line.AccountCode)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, line.AccountCode)
		}
		lines = append(lines, domain.JournalEntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   account.AccountID,
			AccountCode: account.Code,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
			AuditFields: audit,
		})
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		Date:        req.Date,
		Description: req.Description,
		Journal:     req.Journal,
		ExerciseID:  req.ExerciseID,
		DailyID:     req.DailyID,
		IsValidated: true,
		Lines:       lines,
		AuditFields: audit,
	}
	if !entry.IsBalanced() {
		debit, credit := domain.LineTotals(lines)
		return nil, fmt.Errorf("%w: debits %s != credits %s", apperrors.ErrImbalance, debit, credit)
	}

	created, err := s.entryRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "failed to create entry", "journal", string(req.Journal))
		return nil, err
	}
	s.LogInfo(ctx, "entry created", "reference", created.Reference, "total", created.Total().String())
	return created, nil
}

// GetEntry returns the entry with its lines.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.entryRepo.FindEntryByID(ctx, entryID)
}
