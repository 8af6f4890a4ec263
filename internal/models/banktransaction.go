package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is the persistence row for an imported statement line.
// (tenant_id, external_id) is unique.
type BankTransaction struct {
	TransactionID    string          `db:"transaction_id"`
	TenantID         string          `db:"tenant_id"`
	ExternalID       string          `db:"external_id"`
	BookingDate      time.Time       `db:"booking_date"`
	Counterparty     string          `db:"counterparty"`
	Description      string          `db:"description"`
	Amount           decimal.Decimal `db:"amount"`
	MatchedStatus    string          `db:"matched_status"`
	MatchedInvoiceID *string         `db:"matched_invoice_id"`
	JournalEntryID   *string         `db:"journal_entry_id"`
	MatchedAt        *time.Time      `db:"matched_at"`
	AuditFields
}
