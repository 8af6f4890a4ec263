package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	"github.com/saldohq/saldo-backend/internal/models"
	"github.com/saldohq/saldo-backend/internal/utils/mapping"
)

type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepository {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, tenant_id, journal_id, entry_date, reference, description,
	status, posted_at, reversal_of_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

// entrySortColumns maps the enumerated sort keys onto ORDER BY columns. The
// table is the only place a sort key becomes SQL; nothing user-supplied is
// ever concatenated into the clause.
var entrySortColumns = map[portsrepo.EntrySortKey]string{
	portsrepo.SortByEntryDate: "entry_date",
	portsrepo.SortByCreatedAt: "created_at",
	portsrepo.SortByReference: "reference",
}

func (r *PgxEntryRepository) insertLines(ctx context.Context, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, line_no, tenant_id, entry_id, account_id, description, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for i, line := range lines {
		m := mapping.ToModelLine(line)
		m.LineNo = i + 1
		batch.Queue(lineQuery,
			m.LineID, m.LineNo, m.TenantID, m.EntryID, m.AccountID, m.Description, m.Debit, m.Credit,
		)
	}

	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	var br pgx.BatchResults
	if ok {
		br = tx.SendBatch(ctx, batch)
	} else {
		br = r.Pool.SendBatch(ctx, batch)
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines", err)
	}
	return nil
}

// SaveEntry inserts the entry header and all of its lines. Inserting an entry
// that references an already reversed original trips the unique constraint on
// reversal_of_entry_id and surfaces as ErrAlreadyReversed.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, m.TenantID, m.JournalID, m.EntryDate, m.Reference, m.Description,
		m.Status, m.PostedAt, m.ReversalOfEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) && m.ReversalOfEntryID != nil {
			return apperrors.ErrAlreadyReversed
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	return r.insertLines(ctx, entry.Lines)
}

// UpdateEntry rewrites the header and fully replaces the line set.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $3,
		    reference = $4,
		    description = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.TenantID, m.EntryID, m.EntryDate, m.Reference, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + m.EntryID + " not found for update")
	}

	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_lines WHERE tenant_id = $1 AND entry_id = $2;`, m.TenantID, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for journal entry "+m.EntryID, err)
	}
	return r.insertLines(ctx, entry.Lines)
}

func (r *PgxEntryRepository) findEntry(ctx context.Context, tenantID, entryID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	query += `;`

	var m models.JournalEntry
	err := r.db(ctx).QueryRow(ctx, query, tenantID, entryID).Scan(
		&m.EntryID, &m.TenantID, &m.JournalID, &m.EntryDate, &m.Reference, &m.Description,
		&m.Status, &m.PostedAt, &m.ReversalOfEntryID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	entry := mapping.ToDomainEntry(m)
	lines, err := r.findLines(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxEntryRepository) findLines(ctx context.Context, tenantID, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, line_no, tenant_id, entry_id, account_id, description, debit, credit
		FROM journal_lines
		WHERE tenant_id = $1 AND entry_id = $2
		ORDER BY line_no;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID, &l.LineNo, &l.TenantID, &l.EntryID, &l.AccountID, &l.Description, &l.Debit, &l.Credit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for journal entry "+entryID, err)
	}
	return mapping.ToDomainLineSlice(lines), nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, tenantID, entryID, false)
}

// FindEntryForUpdate retrieves an entry with its lines while holding a row
// lock on the header, serializing concurrent status transitions.
func (r *PgxEntryRepository) FindEntryForUpdate(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, tenantID, entryID, true)
}

// UpdateEntryStatus flips the status column and stamps posted_at.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, tenantID string, entryID string, status domain.EntryStatus, postedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $3,
		    posted_at = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, tenantID, entryID, string(status), postedAt, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + entryID + " not found for status update")
	}
	return nil
}

// DeleteEntry removes the entry and its lines.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, tenantID string, entryID string) error {
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_lines WHERE tenant_id = $1 AND entry_id = $2;`, tenantID, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for journal entry "+entryID, err)
	}
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`, tenantID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + entryID + " not found for delete")
	}
	return nil
}

// ListEntries lists entry headers with denormalized line totals, filtered and
// ordered per the validated filter.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryFilter) ([]domain.EntrySummary, error) {
	query := `
		SELECT e.entry_id, e.tenant_id, e.journal_id, e.entry_date, e.reference, e.description,
		       e.status, e.posted_at, e.reversal_of_entry_id,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by,
		       COALESCE(t.total_debit, 0) AS total_debit,
		       COALESCE(t.total_credit, 0) AS total_credit
		FROM journal_entries e
		LEFT JOIN (
			SELECT entry_id, SUM(debit) AS total_debit, SUM(credit) AS total_credit
			FROM journal_lines
			WHERE tenant_id = $1
			GROUP BY entry_id
		) t ON t.entry_id = e.entry_id
		WHERE e.tenant_id = $1
	`
	args := []any{tenantID}

	appendArg := func(clause string, value any) {
		args = append(args, value)
		query += " AND " + clause + " $" + strconv.Itoa(len(args))
	}

	if filter.JournalID != nil {
		appendArg("e.journal_id =", *filter.JournalID)
	}
	if filter.DateFrom != nil {
		appendArg("e.entry_date >=", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		appendArg("e.entry_date <=", *filter.DateTo)
	}
	if filter.Status != nil {
		appendArg("e.status =", string(*filter.Status))
	}
	if filter.ReferenceContains != nil {
		appendArg("e.reference ILIKE", "%"+*filter.ReferenceContains+"%")
	}

	sortColumn, ok := entrySortColumns[filter.SortBy]
	if !ok {
		sortColumn = "entry_date"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += " ORDER BY e." + sortColumn + " " + direction + ", e.created_at " + direction

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []domain.EntrySummary{}
	for rows.Next() {
		var m models.JournalEntry
		var summary domain.EntrySummary
		if err := rows.Scan(
			&m.EntryID, &m.TenantID, &m.JournalID, &m.EntryDate, &m.Reference, &m.Description,
			&m.Status, &m.PostedAt, &m.ReversalOfEntryID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&summary.TotalDebit, &summary.TotalCredit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		summary.JournalEntry = mapping.ToDomainEntry(m)
		entries = append(entries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

// HasReversal reports whether a reversal entry already references entryID.
func (r *PgxEntryRepository) HasReversal(ctx context.Context, tenantID string, entryID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE tenant_id = $1 AND reversal_of_entry_id = $2);`
	var exists bool
	if err := r.db(ctx).QueryRow(ctx, query, tenantID, entryID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check reversal existence for entry "+entryID, err)
	}
	return exists, nil
}
