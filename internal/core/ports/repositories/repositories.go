package repositories

// RepositoryProvider bundles all repository implementations for wiring.
type RepositoryProvider struct {
	TxManager           TxManager
	AccountRepo         AccountRepository
	JournalRepo         JournalRepository
	EntryRepo           EntryRepository
	InvoiceRepo         InvoiceRepository
	BankTransactionRepo BankTransactionRepository
	ReportingRepo       ReportingRepository
	AuditRepo           AuditRepository
}
