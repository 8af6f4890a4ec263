package models

import "github.com/shopspring/decimal"

// SalesInvoice is the persistence row for a sales invoice.
type SalesInvoice struct {
	InvoiceID      string          `db:"invoice_id"`
	TenantID       string          `db:"tenant_id"`
	InvoiceNumber  string          `db:"invoice_number"`
	CustomerName   string          `db:"customer_name"`
	Status         string          `db:"status"`
	Total          decimal.Decimal `db:"total"`
	OpenAmount     decimal.Decimal `db:"open_amount"`
	JournalEntryID *string         `db:"journal_entry_id"`
	AuditFields
}
