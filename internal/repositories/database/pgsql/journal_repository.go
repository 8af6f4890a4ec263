package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	"github.com/saldohq/saldo-backend/internal/models"
	"github.com/saldohq/saldo-backend/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, tenant_id, code, name, journal_type,
	created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.Type,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal row", err)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// SaveJournal inserts a new journal. A (tenant_id, code) collision surfaces
// as ErrDuplicateCode.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.JournalID, m.TenantID, m.Code, m.Name, m.Type,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateCode
		}
		return apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}
	return nil
}

// UpdateJournal rewrites the mutable columns of a journal.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		UPDATE journals
		SET code = $3,
		    name = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE tenant_id = $1 AND journal_id = $2;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.TenantID, m.JournalID, m.Code, m.Name, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateCode
		}
		return apperrors.NewAppError(500, "failed to update journal "+m.JournalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + m.JournalID + " not found for update")
	}
	return nil
}

// FindJournalByID retrieves a journal by its id within the tenant.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE tenant_id = $1 AND journal_id = $2;`
	return scanJournal(r.db(ctx).QueryRow(ctx, query, tenantID, journalID))
}

// FindJournalByCode retrieves a journal by its tenant-unique code.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, tenantID string, code string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE tenant_id = $1 AND code = $2;`
	return scanJournal(r.db(ctx).QueryRow(ctx, query, tenantID, code))
}

// ListJournals retrieves the tenant's posting streams ordered by code.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, tenantID string) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE tenant_id = $1 ORDER BY code;`
	rows, err := r.db(ctx).Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		var m models.Journal
		if err := rows.Scan(
			&m.JournalID, &m.TenantID, &m.Code, &m.Name, &m.Type,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}
	return journals, nil
}
