package dto

import (
	"github.com/saldohq/saldo-backend/internal/core/domain"
)

// CreateJournalRequest defines the payload for creating a posting stream.
type CreateJournalRequest struct {
	Code string `json:"code" binding:"required,max=16"`
	Name string `json:"name" binding:"required,max=255"`
	Type string `json:"type" binding:"required,oneof=SALES PURCHASE BANK GENERAL"`
}

// UpdateJournalRequest defines the payload for updating a posting stream.
type UpdateJournalRequest struct {
	Code *string `json:"code" binding:"omitempty,max=16"`
	Name *string `json:"name" binding:"omitempty,max=255"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID string `json:"journalID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"`
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID: j.JournalID,
		Code:      j.Code,
		Name:      j.Name,
		Type:      string(j.Type),
	}
}

// ToJournalResponses converts a slice of domain journals.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = ToJournalResponse(&journals[i])
	}
	return responses
}
