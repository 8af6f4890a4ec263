package dto

import (
	"fmt"
	"time"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one debit or credit line in a create/update request.
// Exactly one of Debit/Credit must be positive; the service enforces this.
type EntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateEntryRequest defines the payload for creating a draft journal entry.
type CreateEntryRequest struct {
	JournalID   string             `json:"journalID" binding:"required"`
	EntryDate   time.Time          `json:"entryDate" binding:"required"`
	Reference   string             `json:"reference"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateEntryRequest defines the payload for rewriting a draft entry. The line
// set fully replaces the existing lines; it is not a merge.
type UpdateEntryRequest struct {
	EntryDate   time.Time          `json:"entryDate" binding:"required"`
	Reference   string             `json:"reference"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ListEntriesParams narrows and orders an entry listing. Bound from query
// parameters by the handler and validated before it reaches the repository.
type ListEntriesParams struct {
	JournalID         *string    `form:"journalID"`
	DateFrom          *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo            *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Status            *string    `form:"status"`
	ReferenceContains *string    `form:"reference"`
	SortBy            string     `form:"sortBy"`
	SortDesc          bool       `form:"sortDesc"`
	Limit             int        `form:"limit"`
}

// ToFilter validates the boundary input and converts it into a repository
// filter. Unknown status values and sort keys are rejected here, never passed
// through to query construction.
func (p ListEntriesParams) ToFilter() (portsrepo.EntryFilter, error) {
	filter := portsrepo.EntryFilter{
		JournalID:         p.JournalID,
		DateFrom:          p.DateFrom,
		DateTo:            p.DateTo,
		ReferenceContains: p.ReferenceContains,
		SortDesc:          p.SortDesc,
		Limit:             p.Limit,
	}

	if p.Status != nil {
		status := domain.EntryStatus(*p.Status)
		switch status {
		case domain.EntryDraft, domain.EntryPosted, domain.EntryReversed:
			filter.Status = &status
		default:
			return portsrepo.EntryFilter{}, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, *p.Status)
		}
	}

	sortBy := portsrepo.SortByEntryDate
	if p.SortBy != "" {
		sortBy = portsrepo.EntrySortKey(p.SortBy)
		if !sortBy.IsValid() {
			return portsrepo.EntryFilter{}, fmt.Errorf("%w: unknown sort key %q", apperrors.ErrValidation, p.SortBy)
		}
	}
	filter.SortBy = sortBy

	return filter, nil
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryResponse defines the data returned for a journal entry with its lines.
type EntryResponse struct {
	EntryID           string              `json:"entryID"`
	JournalID         string              `json:"journalID"`
	EntryDate         time.Time           `json:"entryDate"`
	Reference         string              `json:"reference"`
	Description       string              `json:"description"`
	Status            string              `json:"status"`
	PostedAt          *time.Time          `json:"postedAt,omitempty"`
	ReversalOfEntryID *string             `json:"reversalOfEntryID,omitempty"`
	TotalDebit        decimal.Decimal     `json:"totalDebit"`
	TotalCredit       decimal.Decimal     `json:"totalCredit"`
	Lines             []EntryLineResponse `json:"lines"`
}

// ToEntryResponse converts a domain.JournalEntry to its response DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return EntryResponse{
		EntryID:           e.EntryID,
		JournalID:         e.JournalID,
		EntryDate:         e.EntryDate,
		Reference:         e.Reference,
		Description:       e.Description,
		Status:            string(e.Status),
		PostedAt:          e.PostedAt,
		ReversalOfEntryID: e.ReversalOfEntryID,
		TotalDebit:        e.TotalDebit(),
		TotalCredit:       e.TotalCredit(),
		Lines:             lines,
	}
}

// EntrySummaryResponse defines one row of an entry listing.
type EntrySummaryResponse struct {
	EntryID           string          `json:"entryID"`
	JournalID         string          `json:"journalID"`
	EntryDate         time.Time       `json:"entryDate"`
	Reference         string          `json:"reference"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	PostedAt          *time.Time      `json:"postedAt,omitempty"`
	ReversalOfEntryID *string         `json:"reversalOfEntryID,omitempty"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
}

// ToEntrySummaryResponses converts list rows to response DTOs.
func ToEntrySummaryResponses(entries []domain.EntrySummary) []EntrySummaryResponse {
	responses := make([]EntrySummaryResponse, len(entries))
	for i, e := range entries {
		responses[i] = EntrySummaryResponse{
			EntryID:           e.EntryID,
			JournalID:         e.JournalID,
			EntryDate:         e.EntryDate,
			Reference:         e.Reference,
			Description:       e.Description,
			Status:            string(e.Status),
			PostedAt:          e.PostedAt,
			ReversalOfEntryID: e.ReversalOfEntryID,
			TotalDebit:        e.TotalDebit,
			TotalCredit:       e.TotalCredit,
		}
	}
	return responses
}
