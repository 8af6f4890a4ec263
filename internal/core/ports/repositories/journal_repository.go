package repositories

import (
	"context"

	"github.com/saldohq/saldo-backend/internal/core/domain"
)

// JournalRepository persists the named posting streams. Implementations
// guarantee (tenant_id, code) uniqueness.
type JournalRepository interface {
	SaveJournal(ctx context.Context, journal domain.Journal) error
	UpdateJournal(ctx context.Context, journal domain.Journal) error
	FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error)
	FindJournalByCode(ctx context.Context, tenantID string, code string) (*domain.Journal, error)
	ListJournals(ctx context.Context, tenantID string) ([]domain.Journal, error)
}
