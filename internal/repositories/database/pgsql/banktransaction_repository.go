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

type PgxBankTransactionRepository struct {
	BaseRepository
}

func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepository {
	return &PgxBankTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankTransactionRepository = (*PgxBankTransactionRepository)(nil)

const bankTxnColumns = `transaction_id, tenant_id, external_id, booking_date, counterparty, description,
	amount, matched_status, matched_invoice_id, journal_entry_id, matched_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBankTransaction(row pgx.Row) (*domain.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TransactionID, &m.TenantID, &m.ExternalID, &m.BookingDate, &m.Counterparty, &m.Description,
		&m.Amount, &m.MatchedStatus, &m.MatchedInvoiceID, &m.JournalEntryID, &m.MatchedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
	}
	txn := mapping.ToDomainBankTransaction(m)
	return &txn, nil
}

// SaveTransaction inserts an imported statement line. (tenant_id, external_id)
// uniqueness is enforced by the store.
func (r *PgxBankTransactionRepository) SaveTransaction(ctx context.Context, txn domain.BankTransaction) error {
	m := mapping.ToModelBankTransaction(txn)
	query := `
		INSERT INTO bank_transactions (` + bankTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.TransactionID, m.TenantID, m.ExternalID, m.BookingDate, m.Counterparty, m.Description,
		m.Amount, m.MatchedStatus, m.MatchedInvoiceID, m.JournalEntryID, m.MatchedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateCode
		}
		return apperrors.NewAppError(500, "failed to insert bank transaction "+m.TransactionID, err)
	}
	return nil
}

// UpdateTransaction rewrites the match-related columns of a transaction.
func (r *PgxBankTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.BankTransaction) error {
	m := mapping.ToModelBankTransaction(txn)
	query := `
		UPDATE bank_transactions
		SET matched_status = $3,
		    matched_invoice_id = $4,
		    journal_entry_id = $5,
		    matched_at = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE tenant_id = $1 AND transaction_id = $2;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.TenantID, m.TransactionID, m.MatchedStatus, m.MatchedInvoiceID, m.JournalEntryID, m.MatchedAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bank transaction "+m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank transaction " + m.TransactionID + " not found for update")
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its id within the tenant.
func (r *PgxBankTransactionRepository) FindTransactionByID(ctx context.Context, tenantID string, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE tenant_id = $1 AND transaction_id = $2;`
	return scanBankTransaction(r.db(ctx).QueryRow(ctx, query, tenantID, transactionID))
}

// FindTransactionForUpdate retrieves a transaction while holding a row lock,
// serializing concurrent match attempts.
func (r *PgxBankTransactionRepository) FindTransactionForUpdate(ctx context.Context, tenantID string, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE tenant_id = $1 AND transaction_id = $2 FOR UPDATE;`
	return scanBankTransaction(r.db(ctx).QueryRow(ctx, query, tenantID, transactionID))
}

// FindTransactionByExternalID retrieves a transaction by its bank-feed id.
func (r *PgxBankTransactionRepository) FindTransactionByExternalID(ctx context.Context, tenantID string, externalID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE tenant_id = $1 AND external_id = $2;`
	return scanBankTransaction(r.db(ctx).QueryRow(ctx, query, tenantID, externalID))
}

// ListTransactionsByStatus lists transactions in a matched status, newest booking first.
func (r *PgxBankTransactionRepository) ListTransactionsByStatus(ctx context.Context, tenantID string, status domain.MatchedStatus) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTxnColumns + `
		FROM bank_transactions
		WHERE tenant_id = $1 AND matched_status = $2
		ORDER BY booking_date DESC, created_at DESC;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, string(status))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank transactions", err)
	}
	defer rows.Close()

	txns := []domain.BankTransaction{}
	for rows.Next() {
		var m models.BankTransaction
		if err := rows.Scan(
			&m.TransactionID, &m.TenantID, &m.ExternalID, &m.BookingDate, &m.Counterparty, &m.Description,
			&m.Amount, &m.MatchedStatus, &m.MatchedInvoiceID, &m.JournalEntryID, &m.MatchedAt,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
		}
		txns = append(txns, mapping.ToDomainBankTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank transaction rows", err)
	}
	return txns, nil
}
