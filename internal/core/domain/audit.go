package domain

import "time"

// AuditLog is one immutable record of a mutating operation.
type AuditLog struct {
	AuditID     string         `json:"auditID"` // Primary key (UUID)
	TenantID    string         `json:"tenantID"`
	ActorUserID string         `json:"actorUserID"`
	Action      string         `json:"action"`     // e.g. "entry.post"
	EntityType  string         `json:"entityType"` // e.g. "journal_entry"
	EntityID    string         `json:"entityID"`
	Diff        map[string]any `json:"diff,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}
