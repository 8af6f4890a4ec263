package repositories

import (
	"context"

	"github.com/saldohq/saldo-backend/internal/core/domain"
)

// AccountRepository persists the chart of accounts. Implementations guarantee
// (tenant_id, code) uniqueness and surface violations as apperrors.ErrDuplicateCode.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)
	// FindAccountsByIDs returns the accounts found, keyed by id. Missing ids
	// are simply absent from the map; the caller decides whether that is an error.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Account, error)
	// HasPostedLines reports whether any posted journal entry references the account.
	HasPostedLines(ctx context.Context, tenantID string, accountID string) (bool, error)
}
