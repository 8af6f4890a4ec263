package dto

import (
	"github.com/saldohq/saldo-backend/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Code     string `json:"code" binding:"required,max=16"`
	Name     string `json:"name" binding:"required,max=255"`
	Type     string `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsActive *bool  `json:"isActive"` // Defaults to true when omitted
}

// UpdateAccountRequest defines the payload for updating an account. Nil fields
// are left unchanged.
type UpdateAccountRequest struct {
	Code     *string `json:"code" binding:"omitempty,max=16"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Type     *string `json:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsActive *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string `json:"accountID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsActive  bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		IsActive:  a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
