package domain

// AccountType defines the fundamental accounting type of an account.
// The type determines the account's normal balance sign.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the account type is one of the five known types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// HasDebitNormalBalance reports whether the type's normal balance is
// debit-increasing (debit - credit). Asset and Expense accounts are;
// Liability, Equity and Revenue accounts carry a credit normal balance.
func (t AccountType) HasDebitNormalBalance() bool {
	return t == Asset || t == Expense
}

// Account represents one account in a tenant's chart of accounts.
type Account struct {
	AccountID string      `json:"accountID"` // Primary key (UUID)
	TenantID  string      `json:"tenantID"`
	Code      string      `json:"code"` // Unique per tenant
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	IsActive  bool        `json:"isActive"` // Soft-deactivation flag
	AuditFields
}
