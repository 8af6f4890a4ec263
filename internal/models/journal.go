package models

// Journal is the persistence row for a posting stream.
// (tenant_id, code) is unique.
type Journal struct {
	JournalID string `db:"journal_id"`
	TenantID  string `db:"tenant_id"`
	Code      string `db:"code"`
	Name      string `db:"name"`
	Type      string `db:"journal_type"`
	AuditFields
}
