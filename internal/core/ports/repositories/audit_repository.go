package repositories

import (
	"context"

	"github.com/saldohq/saldo-backend/internal/core/domain"
)

// AuditRepository persists the append-only audit trail.
type AuditRepository interface {
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error
	ListAuditLogsByEntity(ctx context.Context, tenantID string, entityType string, entityID string) ([]domain.AuditLog, error)
}
