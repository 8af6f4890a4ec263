package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saldohq/saldo-backend/internal/apperrors"
	"github.com/saldohq/saldo-backend/internal/core/domain"
	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/core/services"
	"github.com/saldohq/saldo-backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	audit       *recordingAuditSvc
	svc         portssvc.AccountSvcFacade
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.accountRepo = new(MockAccountRepository)
	s.audit = new(recordingAuditSvc)
	s.svc = services.NewAccountService(s.accountRepo, s.audit)
}

func (s *AccountServiceTestSuite) TestCreateAccount_Succeeds() {
	s.accountRepo.On("FindAccountByCode", mock.Anything, testTenantID, "1010").Return(nil, apperrors.ErrNotFound)
	s.accountRepo.On("SaveAccount", mock.Anything, mock.Anything).Return(nil)

	account, err := s.svc.CreateAccount(context.Background(), testTenantID, dto.CreateAccountRequest{
		Code: "1010",
		Name: "Bank",
		Type: "ASSET",
	}, testUserID)

	s.Require().NoError(err)
	s.Equal("1010", account.Code)
	s.Equal(domain.Asset, account.Type)
	s.True(account.IsActive)
	s.Equal(testTenantID, account.TenantID)
	s.Contains(s.audit.actions, "account.create")
}

func (s *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	existing := &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "1010"}
	s.accountRepo.On("FindAccountByCode", mock.Anything, testTenantID, "1010").Return(existing, nil)

	_, err := s.svc.CreateAccount(context.Background(), testTenantID, dto.CreateAccountRequest{
		Code: "1010",
		Name: "Bank",
		Type: "ASSET",
	}, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrDuplicateCode)
	s.accountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_RejectsUnknownType() {
	_, err := s.svc.CreateAccount(context.Background(), testTenantID, dto.CreateAccountRequest{
		Code: "1010",
		Name: "Bank",
		Type: "CONTRA",
	}, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	accountID := uuid.NewString()
	s.accountRepo.On("FindAccountByID", mock.Anything, testTenantID, accountID).Return(nil, apperrors.ErrNotFound)

	name := "Renamed"
	_, err := s.svc.UpdateAccount(context.Background(), testTenantID, accountID, dto.UpdateAccountRequest{Name: &name}, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_DuplicateCodeOnRename() {
	account := &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "1010", Type: domain.Asset, IsActive: true}
	other := &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "1020", Type: domain.Asset, IsActive: true}
	s.accountRepo.On("FindAccountByID", mock.Anything, testTenantID, account.AccountID).Return(account, nil)
	s.accountRepo.On("FindAccountByCode", mock.Anything, testTenantID, "1020").Return(other, nil)

	code := "1020"
	_, err := s.svc.UpdateAccount(context.Background(), testTenantID, account.AccountID, dto.UpdateAccountRequest{Code: &code}, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrDuplicateCode)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_TypeLockedAfterPosting() {
	account := &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "8000", Type: domain.Revenue, IsActive: true}
	s.accountRepo.On("FindAccountByID", mock.Anything, testTenantID, account.AccountID).Return(account, nil)
	s.accountRepo.On("HasPostedLines", mock.Anything, testTenantID, account.AccountID).Return(true, nil)

	newType := "EXPENSE"
	_, err := s.svc.UpdateAccount(context.Background(), testTenantID, account.AccountID, dto.UpdateAccountRequest{Type: &newType}, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrAccountTypeLocked)
	s.accountRepo.AssertNotCalled(s.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_TypeChangeAllowedWithoutPostings() {
	account := &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "8000", Type: domain.Revenue, IsActive: true}
	s.accountRepo.On("FindAccountByID", mock.Anything, testTenantID, account.AccountID).Return(account, nil)
	s.accountRepo.On("HasPostedLines", mock.Anything, testTenantID, account.AccountID).Return(false, nil)
	s.accountRepo.On("UpdateAccount", mock.Anything, mock.Anything).Return(nil)

	newType := "EXPENSE"
	updated, err := s.svc.UpdateAccount(context.Background(), testTenantID, account.AccountID, dto.UpdateAccountRequest{Type: &newType}, testUserID)

	s.Require().NoError(err)
	s.Equal(domain.Expense, updated.Type)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_Succeeds() {
	account := &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "1010", Type: domain.Asset, IsActive: true}
	s.accountRepo.On("FindAccountByID", mock.Anything, testTenantID, account.AccountID).Return(account, nil)
	s.accountRepo.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return !a.IsActive
	})).Return(nil)

	err := s.svc.DeactivateAccount(context.Background(), testTenantID, account.AccountID, testUserID)

	s.Require().NoError(err)
	s.Contains(s.audit.actions, "account.deactivate")
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_IdempotentWhenInactive() {
	account := &domain.Account{AccountID: uuid.NewString(), TenantID: testTenantID, Code: "1010", Type: domain.Asset, IsActive: false}
	s.accountRepo.On("FindAccountByID", mock.Anything, testTenantID, account.AccountID).Return(account, nil)

	err := s.svc.DeactivateAccount(context.Background(), testTenantID, account.AccountID, testUserID)

	s.Require().NoError(err)
	s.accountRepo.AssertNotCalled(s.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
