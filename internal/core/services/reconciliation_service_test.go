package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/core/services"
	"github.com/saldohq/saldo-backend/internal/dto"
)

// --- Mock LedgerSvcFacade (as consumed by reconciliation) ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) UpdateEntry(ctx context.Context, tenantID, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) ReverseEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) DeleteEntry(ctx context.Context, tenantID, entryID, userID string) error {
	args := m.Called(ctx, tenantID, entryID, userID)
	return args.Error(0)
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) ([]domain.EntrySummary, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntrySummary), args.Error(1)
}

type ReconciliationServiceTestSuite struct {
	suite.Suite
	bankTxRepo  *MockBankTransactionRepository
	invoiceRepo *MockInvoiceRepository
	accountRepo *MockAccountRepository
	journalRepo *MockJournalRepository
	ledgerSvc   *MockLedgerService
	audit       *recordingAuditSvc
	svc         portssvc.ReconciliationSvcFacade

	bankAccount *domain.Account
	arAccount   *domain.Account
	bankJournal *domain.Journal
}

func (s *ReconciliationServiceTestSuite) SetupTest() {
	s.bankTxRepo = new(MockBankTransactionRepository)
	s.invoiceRepo = new(MockInvoiceRepository)
	s.accountRepo = new(MockAccountRepository)
	s.journalRepo = new(MockJournalRepository)
	s.ledgerSvc = new(MockLedgerService)
	s.audit = new(recordingAuditSvc)

	s.svc = services.NewReconciliationService(
		fakeTxManager{},
		s.bankTxRepo,
		s.invoiceRepo,
		s.accountRepo,
		s.journalRepo,
		s.ledgerSvc,
		s.audit,
		services.SystemCodes{
			BankAccountCode:       "1010",
			ReceivableAccountCode: "1300",
			BankJournalCode:       "BNK",
		},
	)

	s.bankAccount = &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "1010", Name: "Bank", Type: domain.Asset, IsActive: true}
	s.arAccount = &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "1300", Name: "Debtors", Type: domain.Asset, IsActive: true}
	s.bankJournal = &domain.Journal{JournalID: uuid.NewString(), TenantID: testTenantID, Code: "BNK", Name: "Bank", Type: domain.BankJournal}
}

func (s *ReconciliationServiceTestSuite) expectSystemEntities() {
	s.accountRepo.On("FindAccountByCode", mock.Anything, testTenantID, "1010").Return(s.bankAccount, nil)
	s.accountRepo.On("FindAccountByCode", mock.Anything, testTenantID, "1300").Return(s.arAccount, nil)
	s.journalRepo.On("FindJournalByCode", mock.Anything, testTenantID, "BNK").Return(s.bankJournal, nil)
}

func (s *ReconciliationServiceTestSuite) unmatchedTransaction(amount string) *domain.BankTransaction {
	return &domain.BankTransaction{
		TransactionID: uuid.NewString(),
		TenantID:      testTenantID,
		ExternalID:    "bank-stmt-42",
		BookingDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Counterparty:  "ACME BV",
		Amount:        decimal.RequireFromString(amount),
		MatchedStatus: domain.Unmatched,
	}
}

func (s *ReconciliationServiceTestSuite) postedInvoice(total string) *domain.SalesInvoice {
	t := decimal.RequireFromString(total)
	return &domain.SalesInvoice{
		InvoiceID:     uuid.NewString(),
		TenantID:      testTenantID,
		InvoiceNumber: "INV-2025-001",
		CustomerName:  "ACME BV",
		Status:        domain.InvoicePosted,
		Total:         t,
		OpenAmount:    t,
	}
}

// A full payment drives the invoice open amount to zero and the status to PAID.
func (s *ReconciliationServiceTestSuite) TestMatch_FullPaymentMarksInvoicePaid() {
	txn := s.unmatchedTransaction("1210.00")
	invoice := s.postedInvoice("1210.00")

	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)
	s.invoiceRepo.On("FindInvoiceForUpdate", mock.Anything, testTenantID, invoice.InvoiceID).Return(invoice, nil)
	s.expectSystemEntities()

	entryID := uuid.NewString()
	var createReq dto.CreateEntryRequest
	s.ledgerSvc.On("CreateEntry", mock.Anything, testTenantID, mock.Anything, testUserID).
		Run(func(args mock.Arguments) {
			createReq = args.Get(2).(dto.CreateEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: entryID, TenantID: testTenantID, Status: domain.EntryDraft}, nil)
	s.ledgerSvc.On("PostEntry", mock.Anything, testTenantID, entryID, testUserID).
		Return(&domain.JournalEntry{EntryID: entryID, TenantID: testTenantID, Status: domain.EntryPosted}, nil)

	var updatedTxn domain.BankTransaction
	s.bankTxRepo.On("UpdateTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updatedTxn = args.Get(1).(domain.BankTransaction)
	}).Return(nil)
	var updatedInvoice domain.SalesInvoice
	s.invoiceRepo.On("UpdateInvoice", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updatedInvoice = args.Get(1).(domain.SalesInvoice)
	}).Return(nil)

	matched, err := s.svc.MatchTransactionToInvoice(context.Background(), testTenantID, txn.TransactionID, invoice.InvoiceID, testUserID)

	s.Require().NoError(err)

	// The balancing entry: debit bank, credit receivable, both for the amount.
	s.Equal(s.bankJournal.JournalID, createReq.JournalID)
	s.Require().Len(createReq.Lines, 2)
	s.Equal(s.bankAccount.AccountID, createReq.Lines[0].AccountID)
	s.True(createReq.Lines[0].Debit.Equal(decimal.RequireFromString("1210.00")))
	s.Equal(s.arAccount.AccountID, createReq.Lines[1].AccountID)
	s.True(createReq.Lines[1].Credit.Equal(decimal.RequireFromString("1210.00")))

	s.Equal(domain.MatchedToInvoice, matched.MatchedStatus)
	s.Require().NotNil(matched.JournalEntryID)
	s.Equal(entryID, *matched.JournalEntryID)
	s.Require().NotNil(matched.MatchedAt)
	s.Equal(domain.MatchedToInvoice, updatedTxn.MatchedStatus)

	s.True(updatedInvoice.OpenAmount.IsZero(), "open amount: %s", updatedInvoice.OpenAmount)
	s.Equal(domain.InvoicePaid, updatedInvoice.Status)
	s.Contains(s.audit.actions, "banktransaction.match")
}

func (s *ReconciliationServiceTestSuite) TestMatch_PartialPaymentKeepsInvoiceOpen() {
	txn := s.unmatchedTransaction("500.00")
	invoice := s.postedInvoice("1210.00")

	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)
	s.invoiceRepo.On("FindInvoiceForUpdate", mock.Anything, testTenantID, invoice.InvoiceID).Return(invoice, nil)
	s.expectSystemEntities()

	entryID := uuid.NewString()
	s.ledgerSvc.On("CreateEntry", mock.Anything, testTenantID, mock.Anything, testUserID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.EntryDraft}, nil)
	s.ledgerSvc.On("PostEntry", mock.Anything, testTenantID, entryID, testUserID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.EntryPosted}, nil)
	s.bankTxRepo.On("UpdateTransaction", mock.Anything, mock.Anything).Return(nil)

	var updatedInvoice domain.SalesInvoice
	s.invoiceRepo.On("UpdateInvoice", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updatedInvoice = args.Get(1).(domain.SalesInvoice)
	}).Return(nil)

	_, err := s.svc.MatchTransactionToInvoice(context.Background(), testTenantID, txn.TransactionID, invoice.InvoiceID, testUserID)

	s.Require().NoError(err)
	s.True(updatedInvoice.OpenAmount.Equal(decimal.RequireFromString("710.00")))
	s.Equal(domain.InvoicePosted, updatedInvoice.Status)
}

// A residue within the rounding tolerance still clamps the invoice to paid.
func (s *ReconciliationServiceTestSuite) TestMatch_ClampsWithinTolerance() {
	txn := s.unmatchedTransaction("1209.99")
	invoice := s.postedInvoice("1210.00")

	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)
	s.invoiceRepo.On("FindInvoiceForUpdate", mock.Anything, testTenantID, invoice.InvoiceID).Return(invoice, nil)
	s.expectSystemEntities()

	entryID := uuid.NewString()
	s.ledgerSvc.On("CreateEntry", mock.Anything, testTenantID, mock.Anything, testUserID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.EntryDraft}, nil)
	s.ledgerSvc.On("PostEntry", mock.Anything, testTenantID, entryID, testUserID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: domain.EntryPosted}, nil)
	s.bankTxRepo.On("UpdateTransaction", mock.Anything, mock.Anything).Return(nil)

	var updatedInvoice domain.SalesInvoice
	s.invoiceRepo.On("UpdateInvoice", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updatedInvoice = args.Get(1).(domain.SalesInvoice)
	}).Return(nil)

	_, err := s.svc.MatchTransactionToInvoice(context.Background(), testTenantID, txn.TransactionID, invoice.InvoiceID, testUserID)

	s.Require().NoError(err)
	s.True(updatedInvoice.OpenAmount.IsZero())
	s.Equal(domain.InvoicePaid, updatedInvoice.Status)
}

func (s *ReconciliationServiceTestSuite) TestMatch_AlreadyMatched() {
	txn := s.unmatchedTransaction("1210.00")
	txn.MatchedStatus = domain.MatchedToInvoice
	invoice := s.postedInvoice("1210.00")

	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)
	s.invoiceRepo.On("FindInvoiceForUpdate", mock.Anything, testTenantID, invoice.InvoiceID).Return(invoice, nil)

	_, err := s.svc.MatchTransactionToInvoice(context.Background(), testTenantID, txn.TransactionID, invoice.InvoiceID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrAlreadyMatched)
	s.ledgerSvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestMatch_AlreadyPaid() {
	txn := s.unmatchedTransaction("1210.00")
	invoice := s.postedInvoice("1210.00")
	invoice.OpenAmount = decimal.Zero
	invoice.Status = domain.InvoicePaid

	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)
	s.invoiceRepo.On("FindInvoiceForUpdate", mock.Anything, testTenantID, invoice.InvoiceID).Return(invoice, nil)

	_, err := s.svc.MatchTransactionToInvoice(context.Background(), testTenantID, txn.TransactionID, invoice.InvoiceID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrAlreadyPaid)
}

func (s *ReconciliationServiceTestSuite) TestMatch_DraftInvoiceNotPostable() {
	txn := s.unmatchedTransaction("1210.00")
	invoice := s.postedInvoice("1210.00")
	invoice.Status = domain.InvoiceDraft

	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)
	s.invoiceRepo.On("FindInvoiceForUpdate", mock.Anything, testTenantID, invoice.InvoiceID).Return(invoice, nil)

	_, err := s.svc.MatchTransactionToInvoice(context.Background(), testTenantID, txn.TransactionID, invoice.InvoiceID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrInvoiceNotPostable)
}

func (s *ReconciliationServiceTestSuite) TestMatch_RejectsOutgoingTransaction() {
	txn := s.unmatchedTransaction("-45.00")
	invoice := s.postedInvoice("1210.00")

	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)
	s.invoiceRepo.On("FindInvoiceForUpdate", mock.Anything, testTenantID, invoice.InvoiceID).Return(invoice, nil)

	_, err := s.svc.MatchTransactionToInvoice(context.Background(), testTenantID, txn.TransactionID, invoice.InvoiceID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrNotACreditTransaction)
}

func (s *ReconciliationServiceTestSuite) TestMatch_MissingSystemAccountIsConfigurationError() {
	txn := s.unmatchedTransaction("1210.00")
	invoice := s.postedInvoice("1210.00")

	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)
	s.invoiceRepo.On("FindInvoiceForUpdate", mock.Anything, testTenantID, invoice.InvoiceID).Return(invoice, nil)
	s.accountRepo.On("FindAccountByCode", mock.Anything, testTenantID, "1010").Return(nil, apperrors.ErrNotFound)

	_, err := s.svc.MatchTransactionToInvoice(context.Background(), testTenantID, txn.TransactionID, invoice.InvoiceID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrConfiguration)
}

func (s *ReconciliationServiceTestSuite) TestMatch_TransactionNotFound() {
	txnID := uuid.NewString()
	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txnID).Return(nil, apperrors.ErrNotFound)

	_, err := s.svc.MatchTransactionToInvoice(context.Background(), testTenantID, txnID, uuid.NewString(), testUserID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ReconciliationServiceTestSuite) TestUnmatch_RestoresInvoiceAndReversesEntry() {
	entryID := uuid.NewString()
	invoice := s.postedInvoice("1210.00")
	invoice.OpenAmount = decimal.Zero
	invoice.Status = domain.InvoicePaid

	matchedAt := time.Now().UTC()
	txn := s.unmatchedTransaction("1210.00")
	txn.MatchedStatus = domain.MatchedToInvoice
	txn.MatchedInvoiceID = &invoice.InvoiceID
	txn.JournalEntryID = &entryID
	txn.MatchedAt = &matchedAt

	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)
	s.invoiceRepo.On("FindInvoiceForUpdate", mock.Anything, testTenantID, invoice.InvoiceID).Return(invoice, nil)
	s.ledgerSvc.On("ReverseEntry", mock.Anything, testTenantID, entryID, testUserID).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.EntryPosted}, nil)

	var updatedInvoice domain.SalesInvoice
	s.invoiceRepo.On("UpdateInvoice", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updatedInvoice = args.Get(1).(domain.SalesInvoice)
	}).Return(nil)
	var updatedTxn domain.BankTransaction
	s.bankTxRepo.On("UpdateTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updatedTxn = args.Get(1).(domain.BankTransaction)
	}).Return(nil)

	result, err := s.svc.UnmatchTransaction(context.Background(), testTenantID, txn.TransactionID, "matched to wrong invoice", testUserID)

	s.Require().NoError(err)
	s.True(updatedInvoice.OpenAmount.Equal(decimal.RequireFromString("1210.00")))
	s.Equal(domain.InvoicePosted, updatedInvoice.Status)
	s.Equal(domain.Unmatched, updatedTxn.MatchedStatus)
	s.Nil(updatedTxn.MatchedInvoiceID)
	s.Nil(updatedTxn.JournalEntryID)
	s.Nil(updatedTxn.MatchedAt)
	s.Equal(domain.Unmatched, result.MatchedStatus)
	s.Contains(s.audit.actions, "banktransaction.unmatch")
}

func (s *ReconciliationServiceTestSuite) TestUnmatch_RequiresMatchedTransaction() {
	txn := s.unmatchedTransaction("1210.00")
	s.bankTxRepo.On("FindTransactionForUpdate", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)

	_, err := s.svc.UnmatchTransaction(context.Background(), testTenantID, txn.TransactionID, "oops", testUserID)

	s.Require().ErrorIs(err, apperrors.ErrNotMatched)
}

func (s *ReconciliationServiceTestSuite) TestImport_IdempotentOnExternalID() {
	existing := s.unmatchedTransaction("99.00")
	s.bankTxRepo.On("FindTransactionByExternalID", mock.Anything, testTenantID, existing.ExternalID).Return(existing, nil)

	result, err := s.svc.ImportBankTransaction(context.Background(), testTenantID, dto.ImportBankTransactionRequest{
		ExternalID:  existing.ExternalID,
		BookingDate: existing.BookingDate,
		Amount:      existing.Amount,
	}, testUserID)

	s.Require().NoError(err)
	s.Equal(existing.TransactionID, result.TransactionID)
	s.bankTxRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestImport_SavesNewTransaction() {
	s.bankTxRepo.On("FindTransactionByExternalID", mock.Anything, testTenantID, "stmt-7").Return(nil, apperrors.ErrNotFound)
	s.bankTxRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.BankTransaction) bool {
		return t.MatchedStatus == domain.Unmatched && t.ExternalID == "stmt-7"
	})).Return(nil)

	result, err := s.svc.ImportBankTransaction(context.Background(), testTenantID, dto.ImportBankTransactionRequest{
		ExternalID:  "stmt-7",
		BookingDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("250.00"),
	}, testUserID)

	s.Require().NoError(err)
	s.Equal(domain.Unmatched, result.MatchedStatus)
	s.Contains(s.audit.actions, "banktransaction.import")
}

// Two imports of the same statement line can race past the existence check;
// the loser of the insert must still return the winning row, not an error.
func (s *ReconciliationServiceTestSuite) TestImport_ReturnsWinnerWhenInsertLosesRace() {
	winner := s.unmatchedTransaction("250.00")
	winner.ExternalID = "stmt-7"

	s.bankTxRepo.On("FindTransactionByExternalID", mock.Anything, testTenantID, "stmt-7").
		Return(nil, apperrors.ErrNotFound).Once()
	s.bankTxRepo.On("SaveTransaction", mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicateCode)
	s.bankTxRepo.On("FindTransactionByExternalID", mock.Anything, testTenantID, "stmt-7").
		Return(winner, nil).Once()

	result, err := s.svc.ImportBankTransaction(context.Background(), testTenantID, dto.ImportBankTransactionRequest{
		ExternalID:  "stmt-7",
		BookingDate: winner.BookingDate,
		Amount:      winner.Amount,
	}, testUserID)

	s.Require().NoError(err)
	s.Equal(winner.TransactionID, result.TransactionID)
}

func (s *ReconciliationServiceTestSuite) TestIgnore_OnlyUnmatched() {
	txn := s.unmatchedTransaction("12.00")
	txn.MatchedStatus = domain.MatchedToInvoice
	s.bankTxRepo.On("FindTransactionByID", mock.Anything, testTenantID, txn.TransactionID).Return(txn, nil)

	_, err := s.svc.IgnoreTransaction(context.Background(), testTenantID, txn.TransactionID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrAlreadyMatched)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
