package domain

import "github.com/shopspring/decimal"

// InvoiceStatus indicates the lifecycle state of a sales invoice.
type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "DRAFT"
	InvoiceSent   InvoiceStatus = "SENT"
	InvoicePosted InvoiceStatus = "POSTED"
	InvoicePaid   InvoiceStatus = "PAID"
)

// OpenAmountTolerance absorbs rounding when deciding whether an invoice is
// fully paid. It applies only to the invoice open amount, never to the
// journal-entry balance check.
var OpenAmountTolerance = decimal.NewFromFloat(0.01)

// SalesInvoice is the receivable side of reconciliation. OpenAmount starts at
// Total and is monotonically reduced by matched payments.
type SalesInvoice struct {
	InvoiceID      string          `json:"invoiceID"` // Primary key (UUID)
	TenantID       string          `json:"tenantID"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	CustomerName   string          `json:"customerName"`
	Status         InvoiceStatus   `json:"status"`
	Total          decimal.Decimal `json:"total"`
	OpenAmount     decimal.Decimal `json:"openAmount"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	AuditFields
}

// IsOpen reports whether the invoice still has a payable amount beyond the
// rounding tolerance.
func (i *SalesInvoice) IsOpen() bool {
	return i.OpenAmount.GreaterThan(decimal.Zero)
}
