package repositories

import (
	"context"

	"github.com/shopledger/shop_ledger_app/internal/core/domain"
)

// EntryRepository persists journal entries and their lines. All writes are
// atomic: an entry is never visible without its lines, and the reference is
// generated inside the same transaction that inserts the entry.
type EntryRepository interface {
	// CreateEntry assigns a per-(journal, day) reference, inserts the entry
	// with all its lines in one transaction, and returns the stored entry.
	// When the entry links a sale, the sale's accounting_posted flag is set
	// within the same transaction.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error)

	// CreateSaleEntry is CreateEntry for a sale's own entry; when
	// vatSettled is true the sale's vat_entry_recorded flag is also set in
	// the same transaction, so the deferred VAT batch skips the sale.
	CreateSaleEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, vatSettled bool) (*domain.JournalEntry, error)

	// CreateSaleVATEntry posts the deferred VAT entry for one sale. The sale
	// row is locked and its vat_entry_recorded flag re-checked inside the
	// transaction; alreadyRecorded is true (and no entry is written) when a
	// concurrent run got there first.
	CreateSaleVATEntry(ctx context.Context, saleID int64, entry domain.JournalEntry, lines []domain.JournalEntryLine) (created *domain.JournalEntry, alreadyRecorded bool, err error)

	// FindEntryByID returns the entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByAccount returns the account's validated lines in
	// chronological entry order, optionally scoped to an exercise.
	FindLinesByAccount(ctx context.Context, accountID string, exerciseID *string) ([]domain.JournalEntryLine, error)
}
