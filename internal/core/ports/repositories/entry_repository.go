package repositories

import (
	"context"
	"time"

	"github.com/saldohq/saldo-backend/internal/core/domain"
)

// EntrySortKey enumerates the columns ListEntries may be ordered by. The set
// is closed on purpose: callers pick a key, the repository owns the mapping to
// an ORDER BY clause, and anything outside the enum is rejected at the boundary.
type EntrySortKey string

const (
	SortByEntryDate EntrySortKey = "entryDate"
	SortByCreatedAt EntrySortKey = "createdAt"
	SortByReference EntrySortKey = "reference"
)

// IsValid reports whether the key is one of the enumerated sort keys.
func (k EntrySortKey) IsValid() bool {
	switch k {
	case SortByEntryDate, SortByCreatedAt, SortByReference:
		return true
	}
	return false
}

// EntryFilter narrows and orders a ListEntries query. Nil fields are not applied.
type EntryFilter struct {
	JournalID         *string
	DateFrom          *time.Time
	DateTo            *time.Time
	Status            *domain.EntryStatus
	ReferenceContains *string
	SortBy            EntrySortKey
	SortDesc          bool
	Limit             int
}

// EntryRepository persists journal entries and their lines. Lines are a
// composition: they are written and deleted with their entry.
type EntryRepository interface {
	// SaveEntry inserts the entry header and all of its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
	// UpdateEntry rewrites the header fields and fully replaces the line set.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error
	FindEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error)
	// FindEntryForUpdate loads the entry with its lines while holding a row
	// lock on the header. Only meaningful inside a TxManager unit of work; the
	// lock serializes concurrent status transitions on the same entry.
	FindEntryForUpdate(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error)
	UpdateEntryStatus(ctx context.Context, tenantID string, entryID string, status domain.EntryStatus, postedAt *time.Time, updatedBy string, updatedAt time.Time) error
	DeleteEntry(ctx context.Context, tenantID string, entryID string) error
	ListEntries(ctx context.Context, tenantID string, filter EntryFilter) ([]domain.EntrySummary, error)
	// HasReversal reports whether a posted entry already references entryID
	// as its reversal target.
	HasReversal(ctx context.Context, tenantID string, entryID string) (bool, error)
}
