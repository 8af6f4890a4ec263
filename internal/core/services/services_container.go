package services

import (
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
)

// NewServiceContainer wires all services over the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, codes SystemCodes) *portssvc.ServiceContainer {
	auditSvc := NewAuditService(repos.AuditRepo)
	accountSvc := NewAccountService(repos.AccountRepo, auditSvc)
	journalSvc := NewJournalService(repos.JournalRepo, auditSvc)
	ledgerSvc := NewLedgerService(repos.TxManager, repos.EntryRepo, repos.JournalRepo, accountSvc, auditSvc)
	reportingSvc := NewReportingService(repos.ReportingRepo)
	invoiceSvc := NewInvoiceService(repos.InvoiceRepo, auditSvc)
	reconciliationSvc := NewReconciliationService(
		repos.TxManager,
		repos.BankTransactionRepo,
		repos.InvoiceRepo,
		repos.AccountRepo,
		repos.JournalRepo,
		ledgerSvc,
		auditSvc,
		codes,
	)

	return &portssvc.ServiceContainer{
		Account:        accountSvc,
		Journal:        journalSvc,
		Ledger:         ledgerSvc,
		Reporting:      reportingSvc,
		Invoice:        invoiceSvc,
		Reconciliation: reconciliationSvc,
		Audit:          auditSvc,
	}
}
