package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	EntryDraft    EntryStatus = "DRAFT"
	EntryPosted   EntryStatus = "POSTED"
	EntryReversed EntryStatus = "REVERSED"
)

// JournalEntry is a single financial event recorded as a set of debit/credit
// lines. Entries are composed while DRAFT, become immutable once POSTED, and
// end as REVERSED when a sign-swapped reversal entry is spawned for them.
type JournalEntry struct {
	EntryID           string        `json:"entryID"` // Primary key (UUID)
	TenantID          string        `json:"tenantID"`
	JournalID         string        `json:"journalID"` // FK -> Journal
	EntryDate         time.Time     `json:"entryDate"`
	Reference         string        `json:"reference"`
	Description       string        `json:"description"`
	Status            EntryStatus   `json:"status"`
	PostedAt          *time.Time    `json:"postedAt,omitempty"`
	ReversalOfEntryID *string       `json:"reversalOfEntryID,omitempty"` // At most one reversal per original
	Lines             []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// TotalDebit sums the debit side of the entry's lines.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of the entry's lines.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether debits equal credits exactly. There is no
// tolerance here; posting requires exact decimal equality.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// EntrySummary is a journal entry header with denormalized line totals, as
// returned by list queries that do not load the lines themselves.
type EntrySummary struct {
	JournalEntry
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// JournalLine is a single debit or credit against one account. Exactly one of
// Debit/Credit is positive; both are non-negative.
type JournalLine struct {
	LineID      string          `json:"lineID"` // Primary key (UUID)
	TenantID    string          `json:"tenantID"`
	EntryID     string          `json:"entryID"` // FK -> JournalEntry
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
