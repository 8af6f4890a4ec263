package services

import (
	"context"
	"time"

	"github.com/saldohq/saldo-backend/internal/core/domain"
	"github.com/saldohq/saldo-backend/internal/dto"
)

// AccountSvcFacade is the chart-of-accounts registry. Every call is scoped to
// an explicit tenant id; there is no ambient tenant state anywhere in the core.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	// DeactivateAccount is idempotent: deactivating an inactive account succeeds.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, userID string) error
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Account, error)
}

// JournalSvcFacade is the registry of named posting streams.
type JournalSvcFacade interface {
	CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)
	UpdateJournal(ctx context.Context, tenantID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error)
	GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, tenantID string) ([]domain.Journal, error)
}

// LedgerSvcFacade owns the journal-entry state machine
// (DRAFT -> POSTED -> REVERSED) and the balance invariant.
type LedgerSvcFacade interface {
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)
	PostEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error)
	ReverseEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, tenantID string, entryID string, userID string) error
	GetEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) ([]domain.EntrySummary, error)
}

// ReportingSvcFacade derives financial statements from posted entries only.
type ReportingSvcFacade interface {
	ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitAndLossReport, error)
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

// InvoiceSvcFacade records and reads sales invoices.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.SalesInvoice, error)
	GetInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.SalesInvoice, error)
	ListOpenInvoices(ctx context.Context, tenantID string) ([]domain.SalesInvoice, error)
}

// ReconciliationSvcFacade matches bank transactions against open invoices,
// creating the balancing ledger postings as a side effect.
type ReconciliationSvcFacade interface {
	ImportBankTransaction(ctx context.Context, tenantID string, req dto.ImportBankTransactionRequest, creatorUserID string) (*domain.BankTransaction, error)
	GetTransactionByID(ctx context.Context, tenantID string, transactionID string) (*domain.BankTransaction, error)
	ListUnmatchedTransactions(ctx context.Context, tenantID string) ([]domain.BankTransaction, error)
	MatchTransactionToInvoice(ctx context.Context, tenantID string, transactionID string, invoiceID string, userID string) (*domain.BankTransaction, error)
	UnmatchTransaction(ctx context.Context, tenantID string, transactionID string, reason string, userID string) (*domain.BankTransaction, error)
	IgnoreTransaction(ctx context.Context, tenantID string, transactionID string, userID string) (*domain.BankTransaction, error)
}

// AuditSvc is the outbound audit-log sink invoked after every mutating
// operation. Log never fails the business operation it records.
type AuditSvc interface {
	Log(ctx context.Context, tenantID string, actorUserID string, action string, entityType string, entityID string, diff map[string]any)
	ListByEntity(ctx context.Context, tenantID string, entityType string, entityID string) ([]domain.AuditLog, error)
}

// ServiceContainer bundles all service facades for wiring into transports.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	Ledger         LedgerSvcFacade
	Reporting      ReportingSvcFacade
	Invoice        InvoiceSvcFacade
	Reconciliation ReconciliationSvcFacade
	Audit          AuditSvc
}
