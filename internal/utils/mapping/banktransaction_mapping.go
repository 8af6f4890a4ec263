package mapping

import (
	"github.com/saldohq/saldo-backend/internal/core/domain"
	"github.com/saldohq/saldo-backend/internal/models"
)

// ToModelBankTransaction converts a domain BankTransaction to its persistence row.
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID:    d.TransactionID,
		TenantID:         d.TenantID,
		ExternalID:       d.ExternalID,
		BookingDate:      d.BookingDate,
		Counterparty:     d.Counterparty,
		Description:      d.Description,
		Amount:           d.Amount,
		MatchedStatus:    string(d.MatchedStatus),
		MatchedInvoiceID: d.MatchedInvoiceID,
		JournalEntryID:   d.JournalEntryID,
		MatchedAt:        d.MatchedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankTransaction converts a persistence row to a domain BankTransaction.
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID:    m.TransactionID,
		TenantID:         m.TenantID,
		ExternalID:       m.ExternalID,
		BookingDate:      m.BookingDate,
		Counterparty:     m.Counterparty,
		Description:      m.Description,
		Amount:           m.Amount,
		MatchedStatus:    domain.MatchedStatus(m.MatchedStatus),
		MatchedInvoiceID: m.MatchedInvoiceID,
		JournalEntryID:   m.JournalEntryID,
		MatchedAt:        m.MatchedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
