package mapping

import (
	"github.com/saldohq/saldo-backend/internal/core/domain"
	"github.com/saldohq/saldo-backend/internal/models"
)

// ToModelJournal converts a domain Journal to its persistence row.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:   d.JournalID,
		TenantID:    d.TenantID,
		Code:        d.Code,
		Name:        d.Name,
		Type:        string(d.Type),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a persistence row to a domain Journal.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:   m.JournalID,
		TenantID:    m.TenantID,
		Code:        m.Code,
		Name:        m.Name,
		Type:        domain.JournalType(m.Type),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
