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

// journalService maintains the named posting streams entries are grouped into.
// Journals are pure classification; there is no state machine here.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	auditSvc    portssvc.AuditSvc
}

// NewJournalService creates a new journal registry service.
func NewJournalService(journalRepo portsrepo.JournalRepository, auditSvc portssvc.AuditSvc) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal creates a new posting stream for the tenant.
func (s *journalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalType := domain.JournalType(req.Type)
	if !journalType.IsValid() {
		return nil, fmt.Errorf("%w: unknown journal type %q", apperrors.ErrValidation, req.Type)
	}

	existing, err := s.journalRepo.FindJournalByCode(ctx, tenantID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check journal code uniqueness", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to check journal code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: journal code %s", apperrors.ErrDuplicateCode, req.Code)
	}

	now := time.Now().UTC()
	journal := domain.Journal{
		JournalID: uuid.NewString(),
		TenantID:  tenantID,
		Code:      req.Code,
		Name:      req.Name,
		Type:      journalType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.auditSvc.Log(ctx, tenantID, creatorUserID, "journal.create", "journal", journal.JournalID, map[string]any{
		"code": journal.Code,
		"type": string(journal.Type),
	})

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID), slog.String("code", journal.Code))
	return &journal, nil
}

// UpdateJournal renames a posting stream or changes its code.
func (s *journalService) UpdateJournal(ctx context.Context, tenantID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal for update", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, err
	}

	diff := map[string]any{}

	if req.Code != nil && *req.Code != journal.Code {
		other, err := s.journalRepo.FindJournalByCode(ctx, tenantID, *req.Code)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check journal code: %w", err)
		}
		if other != nil && other.JournalID != journal.JournalID {
			return nil, fmt.Errorf("%w: journal code %s", apperrors.ErrDuplicateCode, *req.Code)
		}
		diff["code"] = map[string]string{"from": journal.Code, "to": *req.Code}
		journal.Code = *req.Code
	}

	if req.Name != nil && *req.Name != journal.Name {
		diff["name"] = map[string]string{"from": journal.Name, "to": *req.Name}
		journal.Name = *req.Name
	}

	if len(diff) == 0 {
		return journal, nil
	}

	journal.LastUpdatedAt = time.Now().UTC()
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		logger.Error("Failed to update journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	s.auditSvc.Log(ctx, tenantID, userID, "journal.update", "journal", journal.JournalID, diff)

	logger.Info("Journal updated", slog.String("journal_id", journal.JournalID))
	return journal, nil
}

// GetJournalByID retrieves a single journal.
func (s *journalService) GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

// ListJournals retrieves the tenant's posting streams.
func (s *journalService) ListJournals(ctx context.Context, tenantID string) ([]domain.Journal, error) {
	journals, err := s.journalRepo.ListJournals(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if journals == nil {
		journals = []domain.Journal{}
	}
	return journals, nil
}
