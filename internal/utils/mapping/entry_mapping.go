package mapping

import (
	"github.com/saldohq/saldo-backend/internal/core/domain"
	"github.com/saldohq/saldo-backend/internal/models"
)

// ToModelEntry converts a domain JournalEntry header to its persistence row.
// Lines are mapped separately; they live in their own table.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		TenantID:          d.TenantID,
		JournalID:         d.JournalID,
		EntryDate:         d.EntryDate,
		Reference:         d.Reference,
		Description:       d.Description,
		Status:            string(d.Status),
		PostedAt:          d.PostedAt,
		ReversalOfEntryID: d.ReversalOfEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a persistence row to a domain JournalEntry header.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		TenantID:          m.TenantID,
		JournalID:         m.JournalID,
		EntryDate:         m.EntryDate,
		Reference:         m.Reference,
		Description:       m.Description,
		Status:            domain.EntryStatus(m.Status),
		PostedAt:          m.PostedAt,
		ReversalOfEntryID: m.ReversalOfEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLine converts a domain JournalLine to its persistence row.
func ToModelLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		TenantID:    d.TenantID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

// ToDomainLine converts a persistence row to a domain JournalLine.
func ToDomainLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		TenantID:    m.TenantID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}

// ToDomainLineSlice converts a slice of line rows.
func ToDomainLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLine(m)
	}
	return ds
}
