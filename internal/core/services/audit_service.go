package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

// auditService is the outbound audit-log sink. It records who changed what
// after every mutating operation. Recording is best effort: a failed audit
// write is logged and never fails the business operation it describes.
type auditService struct {
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new audit sink.
func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditSvc {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// Log records one mutating operation.
func (s *auditService) Log(ctx context.Context, tenantID string, actorUserID string, action string, entityType string, entityID string, diff map[string]any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record := domain.AuditLog{
		AuditID:     uuid.NewString(),
		TenantID:    tenantID,
		ActorUserID: actorUserID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Diff:        diff,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.auditRepo.SaveAuditLog(ctx, record); err != nil {
		logger.Warn("Failed to write audit log",
			slog.String("action", action),
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()))
	}
}

// ListByEntity returns the audit trail for one entity, newest first.
func (s *auditService) ListByEntity(ctx context.Context, tenantID string, entityType string, entityID string) ([]domain.AuditLog, error) {
	logs, err := s.auditRepo.ListAuditLogsByEntity(ctx, tenantID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}
	return logs, nil
}
