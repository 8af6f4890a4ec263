package dto

import (
	"time"

	"github.com/saldohq/saldo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ImportBankTransactionRequest defines the payload for importing one bank
// statement line. ExternalID makes the import idempotent per tenant.
type ImportBankTransactionRequest struct {
	ExternalID   string          `json:"externalID" binding:"required,max=128"`
	BookingDate  time.Time       `json:"bookingDate" binding:"required"`
	Counterparty string          `json:"counterparty" binding:"max=255"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// MatchTransactionRequest defines the payload for matching a bank transaction
// to an open invoice.
type MatchTransactionRequest struct {
	InvoiceID string `json:"invoiceID" binding:"required"`
}

// UnmatchTransactionRequest defines the payload for undoing a match.
type UnmatchTransactionRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// BankTransactionResponse defines the data returned for a bank transaction.
type BankTransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	ExternalID       string          `json:"externalID"`
	BookingDate      time.Time       `json:"bookingDate"`
	Counterparty     string          `json:"counterparty"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	MatchedStatus    string          `json:"matchedStatus"`
	MatchedInvoiceID *string         `json:"matchedInvoiceID,omitempty"`
	JournalEntryID   *string         `json:"journalEntryID,omitempty"`
	MatchedAt        *time.Time      `json:"matchedAt,omitempty"`
}

// ToBankTransactionResponse converts a domain.BankTransaction to its response DTO.
func ToBankTransactionResponse(t *domain.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		TransactionID:    t.TransactionID,
		ExternalID:       t.ExternalID,
		BookingDate:      t.BookingDate,
		Counterparty:     t.Counterparty,
		Description:      t.Description,
		Amount:           t.Amount,
		MatchedStatus:    string(t.MatchedStatus),
		MatchedInvoiceID: t.MatchedInvoiceID,
		JournalEntryID:   t.JournalEntryID,
		MatchedAt:        t.MatchedAt,
	}
}

// ToBankTransactionResponses converts a slice of domain bank transactions.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	responses := make([]BankTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToBankTransactionResponse(&txns[i])
	}
	return responses
}
