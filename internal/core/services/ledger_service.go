package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/dto"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

// ledgerService owns the journal-entry state machine. Drafts may be freely
// rewritten or deleted; posting fixes the balance invariant permanently;
// reversal spawns a sign-swapped posted entry and terminates the original.
type ledgerService struct {
	txManager   portsrepo.TxManager
	entryRepo   portsrepo.EntryRepository
	journalRepo portsrepo.JournalRepository
	accountSvc  portssvc.AccountSvcFacade
	auditSvc    portssvc.AuditSvc
}

// NewLedgerService creates the ledger engine.
func NewLedgerService(
	txManager portsrepo.TxManager,
	entryRepo portsrepo.EntryRepository,
	journalRepo portsrepo.JournalRepository,
	accountSvc portssvc.AccountSvcFacade,
	auditSvc portssvc.AuditSvc,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		txManager:   txManager,
		entryRepo:   entryRepo,
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// buildLines validates the requested lines and converts them into domain
// lines. A line must carry exactly one positive side; both sides must be
// non-negative.
func (s *ledgerService) buildLines(tenantID, entryID string, reqLines []dto.EntryLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		if lr.Debit.IsNegative() || lr.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrInvalidLine, i+1)
		}
		debitSet := lr.Debit.IsPositive()
		creditSet := lr.Credit.IsPositive()
		if debitSet == creditSet {
			// Either both sides populated or neither.
			return nil, fmt.Errorf("%w: line %d must have exactly one of debit or credit positive", apperrors.ErrInvalidLine, i+1)
		}
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			TenantID:    tenantID,
			EntryID:     entryID,
			AccountID:   lr.AccountID,
			Description: lr.Description,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
		}
	}
	return lines, nil
}

// resolveAccounts verifies that every referenced account exists in the tenant
// and is active. The error names the missing ids so the caller can correct
// the request.
func (s *ledgerService) resolveAccounts(ctx context.Context, tenantID string, lines []domain.JournalLine) error {
	idSet := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, seen := idSet[l.AccountID]; !seen {
			idSet[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	var missing []string
	for _, id := range ids {
		if _, found := accounts[id]; !found {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: account(s) %s", apperrors.ErrNotFound, strings.Join(missing, ", "))
	}

	for _, id := range ids {
		if acc := accounts[id]; !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// CreateEntry records a new journal entry in DRAFT. Drafts may be unbalanced
// while they are being composed; the balance invariant is enforced at posting
// time, not here.
func (s *ledgerService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.journalRepo.FindJournalByID(ctx, tenantID, req.JournalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, req.JournalID)
		}
		logger.Error("Failed to fetch journal for entry creation", slog.String("error", err.Error()), slog.String("journal_id", req.JournalID))
		return nil, fmt.Errorf("failed to fetch journal: %w", err)
	}

	entryID := uuid.NewString()
	lines, err := s.buildLines(tenantID, entryID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.resolveAccounts(ctx, tenantID, lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    tenantID,
		JournalID:   req.JournalID,
		EntryDate:   req.EntryDate,
		Reference:   req.Reference,
		Description: req.Description,
		Status:      domain.EntryDraft,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Header and lines must land together; a lineless draft must never persist.
	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		return s.entryRepo.SaveEntry(ctx, entry)
	})
	if err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.auditSvc.Log(ctx, tenantID, creatorUserID, "entry.create", "journal_entry", entryID, map[string]any{
		"journalID": req.JournalID,
		"lineCount": len(lines),
	})

	logger.Info("Journal entry created", slog.String("entry_id", entryID), slog.String("journal_id", req.JournalID))
	return &entry, nil
}

// UpdateEntry rewrites a draft entry. The line set is fully replaced, not
// merged. Non-draft entries are immutable.
func (s *ledgerService) UpdateEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated *domain.JournalEntry
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		entry, err := s.entryRepo.FindEntryForUpdate(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.EntryDraft {
			return fmt.Errorf("%w: cannot update entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
		}

		lines, err := s.buildLines(tenantID, entryID, req.Lines)
		if err != nil {
			return err
		}
		if err := s.resolveAccounts(ctx, tenantID, lines); err != nil {
			return err
		}

		entry.EntryDate = req.EntryDate
		entry.Reference = req.Reference
		entry.Description = req.Description
		entry.Lines = lines
		entry.LastUpdatedAt = time.Now().UTC()
		entry.LastUpdatedBy = userID

		if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
			return fmt.Errorf("failed to update journal entry: %w", err)
		}
		updated = entry
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidStateTransition) {
			logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, tenantID, userID, "entry.update", "journal_entry", entryID, map[string]any{
		"lineCount": len(updated.Lines),
	})
	return updated, nil
}

// PostEntry transitions a draft entry to POSTED. The entry must have lines and
// its debit and credit totals must be exactly equal; there is no rounding
// tolerance on this check. The status read and flip happen under a row lock so
// no caller can ever observe a posted entry that does not balance.
func (s *ledgerService) PostEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var posted *domain.JournalEntry
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		entry, err := s.entryRepo.FindEntryForUpdate(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.EntryDraft {
			return fmt.Errorf("%w: cannot post entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
		}
		if len(entry.Lines) == 0 {
			return fmt.Errorf("%w: entry %s", apperrors.ErrEmptyEntry, entryID)
		}

		totalDebit := entry.TotalDebit()
		totalCredit := entry.TotalCredit()
		if !totalDebit.Equal(totalCredit) {
			return fmt.Errorf("%w: debit total is %s, credit total is %s",
				apperrors.ErrUnbalanced, totalDebit.String(), totalCredit.String())
		}

		now := time.Now().UTC()
		if err := s.entryRepo.UpdateEntryStatus(ctx, tenantID, entryID, domain.EntryPosted, &now, userID, now); err != nil {
			return fmt.Errorf("failed to post journal entry: %w", err)
		}

		entry.Status = domain.EntryPosted
		entry.PostedAt = &now
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID
		posted = entry
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidStateTransition) &&
			!errors.Is(err, apperrors.ErrEmptyEntry) && !errors.Is(err, apperrors.ErrUnbalanced) {
			logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, tenantID, userID, "entry.post", "journal_entry", entryID, map[string]any{
		"totalDebit":  posted.TotalDebit().String(),
		"totalCredit": posted.TotalCredit().String(),
	})

	logger.Info("Journal entry posted", slog.String("entry_id", entryID))
	return posted, nil
}

// ReverseEntry terminates a posted entry by spawning a new posted entry whose
// lines are debit/credit swapped copies of the original. The reversal lands in
// the same journal, is dated today, and skips DRAFT entirely: a sign-swap of a
// balanced entry balances by construction. At most one reversal may exist per
// original; the explicit existence check turns the race into a clean domain
// error instead of a bare constraint violation.
func (s *ledgerService) ReverseEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var reversal *domain.JournalEntry
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		original, err := s.entryRepo.FindEntryForUpdate(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if original.Status != domain.EntryPosted {
			return fmt.Errorf("%w: cannot reverse entry in status %s", apperrors.ErrInvalidStateTransition, original.Status)
		}

		hasReversal, err := s.entryRepo.HasReversal(ctx, tenantID, entryID)
		if err != nil {
			return fmt.Errorf("failed to check for existing reversal: %w", err)
		}
		if hasReversal {
			return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, entryID)
		}

		now := time.Now().UTC()
		reversalID := uuid.NewString()
		lines := make([]domain.JournalLine, len(original.Lines))
		for i, l := range original.Lines {
			lines[i] = domain.JournalLine{
				LineID:      uuid.NewString(),
				TenantID:    tenantID,
				EntryID:     reversalID,
				AccountID:   l.AccountID,
				Description: l.Description,
				Debit:       l.Credit,
				Credit:      l.Debit,
			}
		}

		originalID := original.EntryID
		entry := domain.JournalEntry{
			EntryID:           reversalID,
			TenantID:          tenantID,
			JournalID:         original.JournalID,
			EntryDate:         now,
			Reference:         original.Reference,
			Description:       fmt.Sprintf("Reversal of: %s", original.Description),
			Status:            domain.EntryPosted,
			PostedAt:          &now,
			ReversalOfEntryID: &originalID,
			Lines:             lines,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
			return fmt.Errorf("failed to save reversal entry: %w", err)
		}
		if err := s.entryRepo.UpdateEntryStatus(ctx, tenantID, originalID, domain.EntryReversed, original.PostedAt, userID, now); err != nil {
			return fmt.Errorf("failed to mark original entry reversed: %w", err)
		}

		reversal = &entry
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidStateTransition) &&
			!errors.Is(err, apperrors.ErrAlreadyReversed) {
			logger.Error("Failed to reverse journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, tenantID, userID, "entry.reverse", "journal_entry", entryID, map[string]any{
		"reversalEntryID": reversal.EntryID,
	})

	logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversal_entry_id", reversal.EntryID))
	return reversal, nil
}

// DeleteEntry removes a draft entry and its lines. Posted and reversed entries
// are part of the permanent record and cannot be deleted.
func (s *ledgerService) DeleteEntry(ctx context.Context, tenantID string, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		entry, err := s.entryRepo.FindEntryForUpdate(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.EntryDraft {
			return fmt.Errorf("%w: cannot delete entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
		}
		return s.entryRepo.DeleteEntry(ctx, tenantID, entryID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidStateTransition) {
			logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return err
	}

	s.auditSvc.Log(ctx, tenantID, userID, "entry.delete", "journal_entry", entryID, nil)

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *ledgerService) GetEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries lists entry headers with denormalized debit/credit totals.
// Filter and sort input is validated at the DTO boundary.
func (s *ledgerService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) ([]domain.EntrySummary, error) {
	filter, err := params.ToFilter()
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListEntries(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if entries == nil {
		entries = []domain.EntrySummary{}
	}
	return entries, nil
}
