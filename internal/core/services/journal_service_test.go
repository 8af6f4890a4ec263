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

type JournalServiceTestSuite struct {
	suite.Suite
	journalRepo *MockJournalRepository
	audit       *recordingAuditSvc
	svc         portssvc.JournalSvcFacade
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.journalRepo = new(MockJournalRepository)
	s.audit = new(recordingAuditSvc)
	s.svc = services.NewJournalService(s.journalRepo, s.audit)
}

func (s *JournalServiceTestSuite) TestCreateJournal_Succeeds() {
	s.journalRepo.On("FindJournalByCode", mock.Anything, testTenantID, "BNK").Return(nil, apperrors.ErrNotFound)
	s.journalRepo.On("SaveJournal", mock.Anything, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Code == "BNK" && j.Type == domain.BankJournal && j.TenantID == testTenantID
	})).Return(nil)

	journal, err := s.svc.CreateJournal(context.Background(), testTenantID, dto.CreateJournalRequest{
		Code: "BNK",
		Name: "Bank",
		Type: "BANK",
	}, testUserID)

	s.Require().NoError(err)
	s.Equal(domain.BankJournal, journal.Type)
	s.Contains(s.audit.actions, "journal.create")
}

func (s *JournalServiceTestSuite) TestCreateJournal_DuplicateCode() {
	existing := &domain.Journal{JournalID: uuid.NewString(), TenantID: testTenantID, Code: "BNK"}
	s.journalRepo.On("FindJournalByCode", mock.Anything, testTenantID, "BNK").Return(existing, nil)

	_, err := s.svc.CreateJournal(context.Background(), testTenantID, dto.CreateJournalRequest{
		Code: "BNK",
		Name: "Bank",
		Type: "BANK",
	}, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrDuplicateCode)
}

func (s *JournalServiceTestSuite) TestCreateJournal_RejectsUnknownType() {
	_, err := s.svc.CreateJournal(context.Background(), testTenantID, dto.CreateJournalRequest{
		Code: "MEM",
		Name: "Memorial",
		Type: "MEMORIAL",
	}, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestUpdateJournal_DuplicateCodeOnRename() {
	journal := &domain.Journal{JournalID: uuid.NewString(), TenantID: testTenantID, Code: "BNK", Type: domain.BankJournal}
	other := &domain.Journal{JournalID: uuid.NewString(), TenantID: testTenantID, Code: "VRK", Type: domain.SalesJournal}
	s.journalRepo.On("FindJournalByID", mock.Anything, testTenantID, journal.JournalID).Return(journal, nil)
	s.journalRepo.On("FindJournalByCode", mock.Anything, testTenantID, "VRK").Return(other, nil)

	code := "VRK"
	_, err := s.svc.UpdateJournal(context.Background(), testTenantID, journal.JournalID, dto.UpdateJournalRequest{Code: &code}, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrDuplicateCode)
}

func (s *JournalServiceTestSuite) TestUpdateJournal_NoChangesIsNoOp() {
	journal := &domain.Journal{JournalID: uuid.NewString(), TenantID: testTenantID, Code: "BNK", Type: domain.BankJournal}
	s.journalRepo.On("FindJournalByID", mock.Anything, testTenantID, journal.JournalID).Return(journal, nil)

	result, err := s.svc.UpdateJournal(context.Background(), testTenantID, journal.JournalID, dto.UpdateJournalRequest{}, testUserID)

	s.Require().NoError(err)
	s.Equal(journal.JournalID, result.JournalID)
	s.journalRepo.AssertNotCalled(s.T(), "UpdateJournal", mock.Anything, mock.Anything)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
