package dto

import (
	"github.com/saldohq/saldo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the payload for recording a sales invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber" binding:"required,max=64"`
	CustomerName  string          `json:"customerName" binding:"required,max=255"`
	Total         decimal.Decimal `json:"total" binding:"required"`
	Status        string          `json:"status" binding:"omitempty,oneof=DRAFT SENT POSTED"`
}

// InvoiceResponse defines the data returned for a sales invoice.
type InvoiceResponse struct {
	InvoiceID      string          `json:"invoiceID"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	CustomerName   string          `json:"customerName"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	OpenAmount     decimal.Decimal `json:"openAmount"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
}

// ToInvoiceResponse converts a domain.SalesInvoice to its response DTO.
func ToInvoiceResponse(i *domain.SalesInvoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:      i.InvoiceID,
		InvoiceNumber:  i.InvoiceNumber,
		CustomerName:   i.CustomerName,
		Status:         string(i.Status),
		Total:          i.Total,
		OpenAmount:     i.OpenAmount,
		JournalEntryID: i.JournalEntryID,
	}
}

// ToInvoiceResponses converts a slice of domain invoices.
func ToInvoiceResponses(invoices []domain.SalesInvoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}
