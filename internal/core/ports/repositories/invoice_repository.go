package repositories

import (
	"context"

	"github.com/saldohq/saldo-backend/internal/core/domain"
)

// InvoiceRepository persists sales invoices.
type InvoiceRepository interface {
	SaveInvoice(ctx context.Context, invoice domain.SalesInvoice) error
	UpdateInvoice(ctx context.Context, invoice domain.SalesInvoice) error
	FindInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.SalesInvoice, error)
	// FindInvoiceForUpdate row-locks the invoice inside the current transaction
	// so concurrent matches cannot both consume the same open amount.
	FindInvoiceForUpdate(ctx context.Context, tenantID string, invoiceID string) (*domain.SalesInvoice, error)
	ListOpenInvoices(ctx context.Context, tenantID string) ([]domain.SalesInvoice, error)
}
