package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchedStatus indicates whether a bank transaction has been reconciled.
type MatchedStatus string

const (
	Unmatched        MatchedStatus = "UNMATCHED"
	MatchedToInvoice MatchedStatus = "MATCHED_TO_INVOICE"
	Ignored          MatchedStatus = "IGNORED"
)

// BankTransaction is an imported bank statement line. Amount is signed:
// positive means incoming money.
type BankTransaction struct {
	TransactionID    string          `json:"transactionID"` // Primary key (UUID)
	TenantID         string          `json:"tenantID"`
	ExternalID       string          `json:"externalID"` // Unique per tenant, from the bank feed
	BookingDate      time.Time       `json:"bookingDate"`
	Counterparty     string          `json:"counterparty"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	MatchedStatus    MatchedStatus   `json:"matchedStatus"`
	MatchedInvoiceID *string         `json:"matchedInvoiceID,omitempty"`
	JournalEntryID   *string         `json:"journalEntryID,omitempty"`
	MatchedAt        *time.Time      `json:"matchedAt,omitempty"`
	AuditFields
}
