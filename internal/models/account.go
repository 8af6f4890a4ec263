package models

// Account is the persistence row for a chart-of-accounts entry.
// (tenant_id, code) is unique.
type Account struct {
	AccountID string `db:"account_id"`
	TenantID  string `db:"tenant_id"`
	Code      string `db:"code"`
	Name      string `db:"name"`
	Type      string `db:"account_type"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}
