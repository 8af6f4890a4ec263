package domain

// JournalType classifies a posting stream.
type JournalType string

const (
	SalesJournal    JournalType = "SALES"
	PurchaseJournal JournalType = "PURCHASE"
	BankJournal     JournalType = "BANK"
	GeneralJournal  JournalType = "GENERAL"
)

// IsValid reports whether the journal type is one of the known streams.
func (t JournalType) IsValid() bool {
	switch t {
	case SalesJournal, PurchaseJournal, BankJournal, GeneralJournal:
		return true
	}
	return false
}

// Journal is a named posting stream that journal entries are grouped into.
// It is purely a classification entity and carries no state machine.
type Journal struct {
	JournalID string      `json:"journalID"` // Primary key (UUID)
	TenantID  string      `json:"tenantID"`
	Code      string      `json:"code"` // Unique per tenant
	Name      string      `json:"name"`
	Type      JournalType `json:"type"`
	AuditFields
}
