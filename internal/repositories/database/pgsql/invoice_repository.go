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

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepository = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, tenant_id, invoice_number, customer_name, status,
	total, open_amount, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (*domain.SalesInvoice, error) {
	var m models.SalesInvoice
	err := row.Scan(
		&m.InvoiceID, &m.TenantID, &m.InvoiceNumber, &m.CustomerName, &m.Status,
		&m.Total, &m.OpenAmount, &m.JournalEntryID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
	}
	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// SaveInvoice inserts a new sales invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO sales_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.InvoiceID, m.TenantID, m.InvoiceNumber, m.CustomerName, m.Status,
		m.Total, m.OpenAmount, m.JournalEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}
	return nil
}

// UpdateInvoice rewrites the mutable columns of an invoice.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE sales_invoices
		SET status = $3,
		    open_amount = $4,
		    journal_entry_id = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE tenant_id = $1 AND invoice_id = $2;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.TenantID, m.InvoiceID, m.Status, m.OpenAmount, m.JournalEntryID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + m.InvoiceID + " not found for update")
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its id within the tenant.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE tenant_id = $1 AND invoice_id = $2;`
	return scanInvoice(r.db(ctx).QueryRow(ctx, query, tenantID, invoiceID))
}

// FindInvoiceForUpdate retrieves an invoice while holding a row lock, so
// concurrent matches cannot both consume the same open amount.
func (r *PgxInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, tenantID string, invoiceID string) (*domain.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE tenant_id = $1 AND invoice_id = $2 FOR UPDATE;`
	return scanInvoice(r.db(ctx).QueryRow(ctx, query, tenantID, invoiceID))
}

// ListOpenInvoices lists invoices that still carry an open amount, oldest first.
func (r *PgxInvoiceRepository) ListOpenInvoices(ctx context.Context, tenantID string) ([]domain.SalesInvoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM sales_invoices
		WHERE tenant_id = $1 AND open_amount > 0 AND status <> 'DRAFT'
		ORDER BY created_at;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open invoices", err)
	}
	defer rows.Close()

	invoices := []domain.SalesInvoice{}
	for rows.Next() {
		var m models.SalesInvoice
		if err := rows.Scan(
			&m.InvoiceID, &m.TenantID, &m.InvoiceNumber, &m.CustomerName, &m.Status,
			&m.Total, &m.OpenAmount, &m.JournalEntryID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return invoices, nil
}
