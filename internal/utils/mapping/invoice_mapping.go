package mapping

import (
	"github.com/saldohq/saldo-backend/internal/core/domain"
	"github.com/saldohq/saldo-backend/internal/models"
)

// ToModelInvoice converts a domain SalesInvoice to its persistence row.
func ToModelInvoice(d domain.SalesInvoice) models.SalesInvoice {
	return models.SalesInvoice{
		InvoiceID:      d.InvoiceID,
		TenantID:       d.TenantID,
		InvoiceNumber:  d.InvoiceNumber,
		CustomerName:   d.CustomerName,
		Status:         string(d.Status),
		Total:          d.Total,
		OpenAmount:     d.OpenAmount,
		JournalEntryID: d.JournalEntryID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a persistence row to a domain SalesInvoice.
func ToDomainInvoice(m models.SalesInvoice) domain.SalesInvoice {
	return domain.SalesInvoice{
		InvoiceID:      m.InvoiceID,
		TenantID:       m.TenantID,
		InvoiceNumber:  m.InvoiceNumber,
		CustomerName:   m.CustomerName,
		Status:         domain.InvoiceStatus(m.Status),
		Total:          m.Total,
		OpenAmount:     m.OpenAmount,
		JournalEntryID: m.JournalEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
