package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the persistence row for an entry header.
// reversal_of_entry_id carries a unique constraint: at most one reversal may
// reference a given entry.
type JournalEntry struct {
	EntryID           string     `db:"entry_id"`
	TenantID          string     `db:"tenant_id"`
	JournalID         string     `db:"journal_id"`
	EntryDate         time.Time  `db:"entry_date"`
	Reference         string     `db:"reference"`
	Description       string     `db:"description"`
	Status            string     `db:"status"`
	PostedAt          *time.Time `db:"posted_at"`
	ReversalOfEntryID *string    `db:"reversal_of_entry_id"`
	AuditFields
}

// JournalLine is the persistence row for one debit/credit line. The store
// enforces debit >= 0 and credit >= 0.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	LineNo      int             `db:"line_no"`
	TenantID    string          `db:"tenant_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}
