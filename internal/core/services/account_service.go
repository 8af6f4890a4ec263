package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/dto"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

// accountService maintains the chart of accounts for each tenant.
type accountService struct {
	accountRepo portsrepo.AccountRepository
	auditSvc    portssvc.AuditSvc
}

// NewAccountService creates a new account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepository, auditSvc portssvc.AuditSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account in the tenant's chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AccountType(req.Type)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}

	// Code must be unique per tenant. The repository's unique index backs this
	// up, but checking first yields a clean domain error.
	existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check account code uniqueness", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicateCode, req.Code)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		TenantID:  tenantID,
		Code:      req.Code,
		Name:      req.Name,
		Type:      accountType,
		IsActive:  isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.auditSvc.Log(ctx, tenantID, creatorUserID, "account.create", "account", account.AccountID, map[string]any{
		"code": account.Code,
		"name": account.Name,
		"type": string(account.Type),
	})

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount updates an existing account. Changing the type of an account
// that already has posted lines against it is rejected: historical reports
// depend on the type's normal-balance sign.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for update", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	diff := map[string]any{}

	if req.Code != nil && *req.Code != account.Code {
		other, err := s.accountRepo.FindAccountByCode(ctx, tenantID, *req.Code)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check account code: %w", err)
		}
		if other != nil && other.AccountID != account.AccountID {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicateCode, *req.Code)
		}
		diff["code"] = map[string]string{"from": account.Code, "to": *req.Code}
		account.Code = *req.Code
	}

	if req.Name != nil && *req.Name != account.Name {
		diff["name"] = map[string]string{"from": account.Name, "to": *req.Name}
		account.Name = *req.Name
	}

	if req.Type != nil && domain.AccountType(*req.Type) != account.Type {
		newType := domain.AccountType(*req.Type)
		if !newType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.Type)
		}
		posted, err := s.accountRepo.HasPostedLines(ctx, tenantID, accountID)
		if err != nil {
			logger.Error("Failed to check for posted lines", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to check posted lines: %w", err)
		}
		if posted {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountTypeLocked, accountID)
		}
		diff["type"] = map[string]string{"from": string(account.Type), "to": string(newType)}
		account.Type = newType
	}

	if req.IsActive != nil && *req.IsActive != account.IsActive {
		diff["isActive"] = map[string]bool{"from": account.IsActive, "to": *req.IsActive}
		account.IsActive = *req.IsActive
	}

	if len(diff) == 0 {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	s.auditSvc.Log(ctx, tenantID, userID, "account.update", "account", account.AccountID, diff)

	logger.Info("Account updated", slog.String("account_id", account.AccountID))
	return account, nil
}

// DeactivateAccount soft-deactivates an account. Deactivating an account that
// is already inactive succeeds silently.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for deactivation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	if !account.IsActive {
		logger.Debug("Account already inactive", slog.String("account_id", accountID))
		return nil
	}

	account.IsActive = false
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	s.auditSvc.Log(ctx, tenantID, userID, "account.deactivate", "account", accountID, nil)

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves accounts in bulk, keyed by id. Missing ids are
// absent from the map.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
}

// ListAccounts retrieves the tenant's chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, includeInactive)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}
