package repositories

import (
	"context"

	"github.com/saldohq/saldo-backend/internal/core/domain"
)

// BankTransactionRepository persists imported bank statement lines.
// Implementations guarantee (tenant_id, external_id) uniqueness.
type BankTransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.BankTransaction) error
	UpdateTransaction(ctx context.Context, txn domain.BankTransaction) error
	FindTransactionByID(ctx context.Context, tenantID string, transactionID string) (*domain.BankTransaction, error)
	// FindTransactionForUpdate row-locks the transaction inside the current
	// transaction, serializing concurrent match attempts.
	FindTransactionForUpdate(ctx context.Context, tenantID string, transactionID string) (*domain.BankTransaction, error)
	FindTransactionByExternalID(ctx context.Context, tenantID string, externalID string) (*domain.BankTransaction, error)
	ListTransactionsByStatus(ctx context.Context, tenantID string, status domain.MatchedStatus) ([]domain.BankTransaction, error)
}
