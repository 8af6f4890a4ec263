package mapping

import (
	"github.com/saldohq/saldo-backend/internal/core/domain"
	"github.com/saldohq/saldo-backend/internal/models"
)

// ToModelAccount converts a domain Account to its persistence row.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		TenantID:    d.TenantID,
		Code:        d.Code,
		Name:        d.Name,
		Type:        string(d.Type),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a persistence row to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		TenantID:    m.TenantID,
		Code:        m.Code,
		Name:        m.Name,
		Type:        domain.AccountType(m.Type),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
