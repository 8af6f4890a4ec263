package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories over one pool. The shared
// BaseRepository doubles as the TxManager: any repository call made inside its
// WithTx joins the same transaction via the context.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := &BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TxManager:           base,
		AccountRepo:         newPgxAccountRepository(dbPool),
		JournalRepo:         newPgxJournalRepository(dbPool),
		EntryRepo:           newPgxEntryRepository(dbPool),
		InvoiceRepo:         newPgxInvoiceRepository(dbPool),
		BankTransactionRepo: newPgxBankTransactionRepository(dbPool),
		ReportingRepo:       newReportingRepository(dbPool),
		AuditRepo:           newPgxAuditRepository(dbPool),
	}
}
