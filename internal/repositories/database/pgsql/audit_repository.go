package pgsql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveAuditLog appends one audit record. The diff is stored as JSONB.
func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	var diff []byte
	if log.Diff != nil {
		var err error
		diff, err = json.Marshal(log.Diff)
		if err != nil {
			return apperrors.NewAppError(500, "failed to marshal audit diff", err)
		}
	}

	query := `
		INSERT INTO audit_logs (audit_id, tenant_id, actor_user_id, action, entity_type, entity_id, diff, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		log.AuditID, log.TenantID, log.ActorUserID, log.Action, log.EntityType, log.EntityID, diff, log.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log "+log.AuditID, err)
	}
	return nil
}

// ListAuditLogsByEntity returns the audit trail for one entity, newest first.
func (r *PgxAuditRepository) ListAuditLogsByEntity(ctx context.Context, tenantID string, entityType string, entityID string) ([]domain.AuditLog, error) {
	query := `
		SELECT audit_id, tenant_id, actor_user_id, action, entity_type, entity_id, diff, created_at
		FROM audit_logs
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY created_at DESC;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, entityType, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit logs", err)
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var log domain.AuditLog
		var diff []byte
		if err := rows.Scan(&log.AuditID, &log.TenantID, &log.ActorUserID, &log.Action, &log.EntityType, &log.EntityID, &diff, &log.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit log row", err)
		}
		if len(diff) > 0 {
			if err := json.Unmarshal(diff, &log.Diff); err != nil {
				return nil, apperrors.NewAppError(500, "failed to unmarshal audit diff", err)
			}
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit log rows", err)
	}
	return logs, nil
}
