package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/dto"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

// SystemCodes names the ledger account and journal codes reconciliation posts
// against. Their presence in each tenant's registry is a deployment
// precondition; a failed lookup is a configuration error, not a user error.
type SystemCodes struct {
	BankAccountCode       string
	ReceivableAccountCode string
	BankJournalCode       string
}

// reconciliationService matches incoming bank transactions to open sales
// invoices. A match is one compound transaction: entry creation, posting, the
// bank transaction update and the invoice mutation commit or fail together.
type reconciliationService struct {
	txManager   portsrepo.TxManager
	bankTxRepo  portsrepo.BankTransactionRepository
	invoiceRepo portsrepo.InvoiceRepository
	accountRepo portsrepo.AccountRepository
	journalRepo portsrepo.JournalRepository
	ledgerSvc   portssvc.LedgerSvcFacade
	auditSvc    portssvc.AuditSvc
	codes       SystemCodes
}

// NewReconciliationService creates the payment reconciliation service.
func NewReconciliationService(
	txManager portsrepo.TxManager,
	bankTxRepo portsrepo.BankTransactionRepository,
	invoiceRepo portsrepo.InvoiceRepository,
	accountRepo portsrepo.AccountRepository,
	journalRepo portsrepo.JournalRepository,
	ledgerSvc portssvc.LedgerSvcFacade,
	auditSvc portssvc.AuditSvc,
	codes SystemCodes,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		txManager:   txManager,
		bankTxRepo:  bankTxRepo,
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		ledgerSvc:   ledgerSvc,
		auditSvc:    auditSvc,
		codes:       codes,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// ImportBankTransaction records one bank statement line. The import is
// idempotent per (tenant, externalID): re-importing returns the existing row.
func (s *reconciliationService) ImportBankTransaction(ctx context.Context, tenantID string, req dto.ImportBankTransactionRequest, creatorUserID string) (*domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.bankTxRepo.FindTransactionByExternalID(ctx, tenantID, req.ExternalID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check bank transaction external id", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to check bank transaction: %w", err)
	}
	if existing != nil {
		logger.Debug("Bank transaction already imported", slog.String("external_id", req.ExternalID))
		return existing, nil
	}

	now := time.Now().UTC()
	txn := domain.BankTransaction{
		TransactionID: uuid.NewString(),
		TenantID:      tenantID,
		ExternalID:    req.ExternalID,
		BookingDate:   req.BookingDate,
		Counterparty:  req.Counterparty,
		Description:   req.Description,
		Amount:        req.Amount,
		MatchedStatus: domain.Unmatched,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bankTxRepo.SaveTransaction(ctx, txn); err != nil {
		// A concurrent import of the same statement line can win the insert
		// between our check and ours. The import stays idempotent: hand back
		// the row that won.
		if errors.Is(err, apperrors.ErrDuplicateCode) {
			winner, findErr := s.bankTxRepo.FindTransactionByExternalID(ctx, tenantID, req.ExternalID)
			if findErr == nil {
				logger.Debug("Bank transaction imported concurrently", slog.String("external_id", req.ExternalID))
				return winner, nil
			}
		}
		logger.Error("Failed to save bank transaction", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save bank transaction: %w", err)
	}

	s.auditSvc.Log(ctx, tenantID, creatorUserID, "banktransaction.import", "bank_transaction", txn.TransactionID, map[string]any{
		"externalID": txn.ExternalID,
		"amount":     txn.Amount.String(),
	})

	logger.Info("Bank transaction imported", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

// GetTransactionByID retrieves a single bank transaction.
func (s *reconciliationService) GetTransactionByID(ctx context.Context, tenantID string, transactionID string) (*domain.BankTransaction, error) {
	return s.bankTxRepo.FindTransactionByID(ctx, tenantID, transactionID)
}

// ListUnmatchedTransactions lists transactions awaiting reconciliation.
func (s *reconciliationService) ListUnmatchedTransactions(ctx context.Context, tenantID string) ([]domain.BankTransaction, error) {
	txns, err := s.bankTxRepo.ListTransactionsByStatus(ctx, tenantID, domain.Unmatched)
	if err != nil {
		return nil, fmt.Errorf("failed to list unmatched transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.BankTransaction{}
	}
	return txns, nil
}

// resolveSystemEntities looks up the bank account, the accounts-receivable
// account and the bank journal by their configured codes.
func (s *reconciliationService) resolveSystemEntities(ctx context.Context, tenantID string) (bank *domain.Account, receivable *domain.Account, journal *domain.Journal, err error) {
	bank, err = s.accountRepo.FindAccountByCode(ctx, tenantID, s.codes.BankAccountCode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: bank account %s: %v", apperrors.ErrConfiguration, s.codes.BankAccountCode, err)
	}
	receivable, err = s.accountRepo.FindAccountByCode(ctx, tenantID, s.codes.ReceivableAccountCode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: accounts receivable %s: %v", apperrors.ErrConfiguration, s.codes.ReceivableAccountCode, err)
	}
	journal, err = s.journalRepo.FindJournalByCode(ctx, tenantID, s.codes.BankJournalCode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: bank journal %s: %v", apperrors.ErrConfiguration, s.codes.BankJournalCode, err)
	}
	return bank, receivable, journal, nil
}

// MatchTransactionToInvoice links an incoming bank transaction to an open
// invoice. It posts a balancing entry (debit bank, credit receivable) through
// the ledger engine — inheriting the balance invariant rather than restating
// it — then updates the transaction and reduces the invoice open amount,
// clamping to zero within the rounding tolerance. Everything happens in one
// database transaction: a partial match can never persist.
func (s *reconciliationService) MatchTransactionToInvoice(ctx context.Context, tenantID string, transactionID string, invoiceID string, userID string) (*domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var matched *domain.BankTransaction
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		txn, err := s.bankTxRepo.FindTransactionForUpdate(ctx, tenantID, transactionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: bank transaction %s", apperrors.ErrNotFound, transactionID)
			}
			return err
		}
		invoice, err := s.invoiceRepo.FindInvoiceForUpdate(ctx, tenantID, invoiceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
			}
			return err
		}

		if txn.MatchedStatus != domain.Unmatched {
			return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyMatched, transactionID, txn.MatchedStatus)
		}
		if !invoice.OpenAmount.IsPositive() {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrAlreadyPaid, invoiceID)
		}
		if invoice.Status == domain.InvoiceDraft {
			return fmt.Errorf("%w: invoice %s is a draft", apperrors.ErrInvoiceNotPostable, invoiceID)
		}
		if !txn.Amount.IsPositive() {
			return fmt.Errorf("%w: amount %s", apperrors.ErrNotACreditTransaction, txn.Amount.String())
		}

		bankAccount, receivableAccount, bankJournal, err := s.resolveSystemEntities(ctx, tenantID)
		if err != nil {
			return err
		}

		entry, err := s.ledgerSvc.CreateEntry(ctx, tenantID, dto.CreateEntryRequest{
			JournalID:   bankJournal.JournalID,
			EntryDate:   txn.BookingDate,
			Reference:   invoice.InvoiceNumber,
			Description: fmt.Sprintf("Payment for invoice %s", invoice.InvoiceNumber),
			Lines: []dto.EntryLineRequest{
				{AccountID: bankAccount.AccountID, Description: txn.Counterparty, Debit: txn.Amount},
				{AccountID: receivableAccount.AccountID, Description: txn.Counterparty, Credit: txn.Amount},
			},
		}, userID)
		if err != nil {
			return fmt.Errorf("failed to create payment entry: %w", err)
		}
		if _, err := s.ledgerSvc.PostEntry(ctx, tenantID, entry.EntryID, userID); err != nil {
			return fmt.Errorf("failed to post payment entry: %w", err)
		}

		now := time.Now().UTC()
		txn.MatchedStatus = domain.MatchedToInvoice
		txn.MatchedInvoiceID = &invoice.InvoiceID
		txn.JournalEntryID = &entry.EntryID
		txn.MatchedAt = &now
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = userID
		if err := s.bankTxRepo.UpdateTransaction(ctx, *txn); err != nil {
			return fmt.Errorf("failed to update bank transaction: %w", err)
		}

		remaining := invoice.OpenAmount.Sub(txn.Amount)
		if remaining.Abs().LessThanOrEqual(domain.OpenAmountTolerance) || remaining.IsNegative() {
			remaining = decimal.Zero
		}
		invoice.OpenAmount = remaining
		if remaining.IsZero() {
			invoice.Status = domain.InvoicePaid
		}
		invoice.LastUpdatedAt = now
		invoice.LastUpdatedBy = userID
		if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		matched = txn
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		logger.Error("Failed to match transaction to invoice",
			slog.String("transaction_id", transactionID),
			slog.String("invoice_id", invoiceID),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Log(ctx, tenantID, userID, "banktransaction.match", "bank_transaction", transactionID, map[string]any{
		"invoiceID":      invoiceID,
		"journalEntryID": *matched.JournalEntryID,
		"amount":         matched.Amount.String(),
	})

	logger.Info("Bank transaction matched to invoice",
		slog.String("transaction_id", transactionID),
		slog.String("invoice_id", invoiceID))
	return matched, nil
}

// UnmatchTransaction undoes a match. The reconciliation entry is reversed
// through the ledger engine (a detached match must not leave a posted entry
// claiming a payment that is no longer recognized), the invoice open amount is
// restored, and the transaction returns to the unmatched pool.
func (s *reconciliationService) UnmatchTransaction(ctx context.Context, tenantID string, transactionID string, reason string, userID string) (*domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var unmatched *domain.BankTransaction
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		txn, err := s.bankTxRepo.FindTransactionForUpdate(ctx, tenantID, transactionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: bank transaction %s", apperrors.ErrNotFound, transactionID)
			}
			return err
		}
		if txn.MatchedStatus != domain.MatchedToInvoice || txn.MatchedInvoiceID == nil {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotMatched, transactionID)
		}

		invoice, err := s.invoiceRepo.FindInvoiceForUpdate(ctx, tenantID, *txn.MatchedInvoiceID)
		if err != nil {
			return fmt.Errorf("failed to load matched invoice: %w", err)
		}

		if txn.JournalEntryID != nil {
			if _, err := s.ledgerSvc.ReverseEntry(ctx, tenantID, *txn.JournalEntryID, userID); err != nil {
				return fmt.Errorf("failed to reverse payment entry: %w", err)
			}
		}

		now := time.Now().UTC()
		restored := invoice.OpenAmount.Add(txn.Amount)
		if restored.GreaterThan(invoice.Total) {
			restored = invoice.Total
		}
		invoice.OpenAmount = restored
		if invoice.Status == domain.InvoicePaid && restored.IsPositive() {
			invoice.Status = domain.InvoicePosted
		}
		invoice.LastUpdatedAt = now
		invoice.LastUpdatedBy = userID
		if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to restore invoice: %w", err)
		}

		txn.MatchedStatus = domain.Unmatched
		txn.MatchedInvoiceID = nil
		txn.JournalEntryID = nil
		txn.MatchedAt = nil
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = userID
		if err := s.bankTxRepo.UpdateTransaction(ctx, *txn); err != nil {
			return fmt.Errorf("failed to update bank transaction: %w", err)
		}

		unmatched = txn
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		logger.Error("Failed to unmatch transaction",
			slog.String("transaction_id", transactionID),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Log(ctx, tenantID, userID, "banktransaction.unmatch", "bank_transaction", transactionID, map[string]any{
		"reason": reason,
	})

	logger.Info("Bank transaction unmatched", slog.String("transaction_id", transactionID), slog.String("reason", reason))
	return unmatched, nil
}

// IgnoreTransaction marks an unmatched transaction as ignored. No ledger
// posting is created; ignored lines simply leave the reconciliation queue.
func (s *reconciliationService) IgnoreTransaction(ctx context.Context, tenantID string, transactionID string, userID string) (*domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.bankTxRepo.FindTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.MatchedStatus != domain.Unmatched {
		return nil, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrAlreadyMatched, transactionID, txn.MatchedStatus)
	}

	txn.MatchedStatus = domain.Ignored
	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = userID
	if err := s.bankTxRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update bank transaction: %w", err)
	}

	s.auditSvc.Log(ctx, tenantID, userID, "banktransaction.ignore", "bank_transaction", transactionID, nil)

	logger.Info("Bank transaction ignored", slog.String("transaction_id", transactionID))
	return txn, nil
}

// isDomainError reports whether err belongs to the expected, recoverable
// domain taxonomy rather than the infrastructure category.
func isDomainError(err error) bool {
	for _, target := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrValidation,
		apperrors.ErrAlreadyMatched,
		apperrors.ErrAlreadyPaid,
		apperrors.ErrInvoiceNotPostable,
		apperrors.ErrNotACreditTransaction,
		apperrors.ErrNotMatched,
		apperrors.ErrConfiguration,
		apperrors.ErrInvalidStateTransition,
		apperrors.ErrAlreadyReversed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
