package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/core/services"
	"github.com/gracebase/steward/internal/dto"
)

type AllocationServiceTestSuite struct {
	suite.Suite
	mockAllocationRepo *MockAllocationRepository
	mockOrgRepo        *MockOrganizationRepository
	mockAuthorizer     *MockOrganizationAuthorizer
	service            portssvc.AllocationSvcFacade

	orgID       string
	requesterID string
	ministry    *domain.Ministry
}

func (s *AllocationServiceTestSuite) SetupTest() {
	s.mockAllocationRepo = new(MockAllocationRepository)
	s.mockOrgRepo = new(MockOrganizationRepository)
	s.mockAuthorizer = new(MockOrganizationAuthorizer)
	s.service = services.NewAllocationService(s.mockAllocationRepo, s.mockOrgRepo, s.mockAuthorizer)

	s.orgID = uuid.NewString()
	s.requesterID = uuid.NewString()
	s.ministry = &domain.Ministry{
		MinistryID:     uuid.NewString(),
		OrganizationID: s.orgID,
		Name:           "Youth",
		IsActive:       true,
	}

	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, s.requesterID, s.orgID, domain.RoleMember).Return(nil).Maybe()
	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, s.requesterID, s.orgID, domain.RoleReadOnly).Return(nil).Maybe()
}

func (s *AllocationServiceTestSuite) quarterly(amounts ...int64) []dto.PeriodEntryInput {
	labels := []string{"Q1", "Q2", "Q3", "Q4"}
	entries := make([]dto.PeriodEntryInput, len(amounts))
	for i, a := range amounts {
		entries[i] = dto.PeriodEntryInput{PeriodLabel: labels[i], Amount: decimal.NewFromInt(a)}
	}
	return entries
}

func (s *AllocationServiceTestSuite) TestCreateAnnualAllocation() {
	ctx := context.Background()

	s.mockOrgRepo.On("FindMinistryByID", ctx, s.ministry.MinistryID).Return(s.ministry, nil).Once()
	s.mockAllocationRepo.On("SaveAllocation", ctx, mock.MatchedBy(func(a domain.AllocationRequest) bool {
		return a.Status == domain.AllocationDraft && a.Version == 1 && a.Breakdown == nil
	})).Return(nil).Once()

	created, err := s.service.CreateAllocation(ctx, s.orgID, s.requesterID, dto.CreateAllocationRequest{
		FiscalYearID:    "FY2026",
		MinistryID:      s.ministry.MinistryID,
		PeriodType:      domain.PeriodAnnual,
		RequestedAmount: decimal.NewFromInt(5000),
	})

	s.Require().NoError(err)
	s.Equal(domain.AllocationDraft, created.Status)
	s.Equal(int64(1), created.Version)
	s.mockAllocationRepo.AssertExpectations(s.T())
}

func (s *AllocationServiceTestSuite) TestCreateQuarterlyAllocationWithMatchingBreakdown() {
	ctx := context.Background()

	s.mockOrgRepo.On("FindMinistryByID", ctx, s.ministry.MinistryID).Return(s.ministry, nil).Once()
	s.mockAllocationRepo.On("SaveAllocation", ctx, mock.Anything).Return(nil).Once()

	created, err := s.service.CreateAllocation(ctx, s.orgID, s.requesterID, dto.CreateAllocationRequest{
		FiscalYearID:    "FY2026",
		MinistryID:      s.ministry.MinistryID,
		PeriodType:      domain.PeriodQuarterly,
		RequestedAmount: decimal.NewFromInt(1000),
		Breakdown:       s.quarterly(250, 250, 250, 250),
	})

	s.Require().NoError(err)
	s.Len(created.Breakdown, 4)
}

func (s *AllocationServiceTestSuite) TestCreateQuarterlyAllocationRejectsMismatchedSum() {
	ctx := context.Background()

	s.mockOrgRepo.On("FindMinistryByID", ctx, s.ministry.MinistryID).Return(s.ministry, nil).Once()

	_, err := s.service.CreateAllocation(ctx, s.orgID, s.requesterID, dto.CreateAllocationRequest{
		FiscalYearID:    "FY2026",
		MinistryID:      s.ministry.MinistryID,
		PeriodType:      domain.PeriodQuarterly,
		RequestedAmount: decimal.NewFromInt(1000),
		Breakdown:       s.quarterly(250, 250, 250, 200),
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockAllocationRepo.AssertNotCalled(s.T(), "SaveAllocation", mock.Anything, mock.Anything)
}

func (s *AllocationServiceTestSuite) TestCreateQuarterlyAllocationRejectsWrongPeriodCount() {
	ctx := context.Background()

	s.mockOrgRepo.On("FindMinistryByID", ctx, s.ministry.MinistryID).Return(s.ministry, nil).Once()

	_, err := s.service.CreateAllocation(ctx, s.orgID, s.requesterID, dto.CreateAllocationRequest{
		FiscalYearID:    "FY2026",
		MinistryID:      s.ministry.MinistryID,
		PeriodType:      domain.PeriodQuarterly,
		RequestedAmount: decimal.NewFromInt(1000),
		Breakdown:       s.quarterly(500, 500),
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *AllocationServiceTestSuite) TestCreateAnnualAllocationRejectsBreakdown() {
	ctx := context.Background()

	s.mockOrgRepo.On("FindMinistryByID", ctx, s.ministry.MinistryID).Return(s.ministry, nil).Once()

	_, err := s.service.CreateAllocation(ctx, s.orgID, s.requesterID, dto.CreateAllocationRequest{
		FiscalYearID:    "FY2026",
		MinistryID:      s.ministry.MinistryID,
		PeriodType:      domain.PeriodAnnual,
		RequestedAmount: decimal.NewFromInt(1000),
		Breakdown:       s.quarterly(250, 250, 250, 250),
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *AllocationServiceTestSuite) TestCreateAllocationRejectsForeignMinistry() {
	ctx := context.Background()
	foreign := &domain.Ministry{
		MinistryID:     uuid.NewString(),
		OrganizationID: uuid.NewString(),
		IsActive:       true,
	}

	s.mockOrgRepo.On("FindMinistryByID", ctx, foreign.MinistryID).Return(foreign, nil).Once()

	_, err := s.service.CreateAllocation(ctx, s.orgID, s.requesterID, dto.CreateAllocationRequest{
		FiscalYearID:    "FY2026",
		MinistryID:      foreign.MinistryID,
		PeriodType:      domain.PeriodAnnual,
		RequestedAmount: decimal.NewFromInt(1000),
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *AllocationServiceTestSuite) TestUpdateAllocationOnlyInDraft() {
	ctx := context.Background()
	allocation := &domain.AllocationRequest{
		AllocationID:    uuid.NewString(),
		OrganizationID:  s.orgID,
		RequesterID:     s.requesterID,
		PeriodType:      domain.PeriodAnnual,
		RequestedAmount: decimal.NewFromInt(1000),
		Status:          domain.AllocationPending,
		Version:         1,
	}

	s.mockAllocationRepo.On("FindAllocationByID", ctx, allocation.AllocationID).Return(allocation, nil).Once()

	newAmount := decimal.NewFromInt(1500)
	_, err := s.service.UpdateAllocation(ctx, s.orgID, allocation.AllocationID, s.requesterID, dto.UpdateAllocationRequest{
		RequestedAmount: &newAmount,
	})

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockAllocationRepo.AssertNotCalled(s.T(), "UpdateAllocationContent", mock.Anything, mock.Anything)
}

func (s *AllocationServiceTestSuite) TestUpdateAllocationOnlyByRequester() {
	ctx := context.Background()
	otherID := uuid.NewString()
	allocation := &domain.AllocationRequest{
		AllocationID:    uuid.NewString(),
		OrganizationID:  s.orgID,
		RequesterID:     s.requesterID,
		PeriodType:      domain.PeriodAnnual,
		RequestedAmount: decimal.NewFromInt(1000),
		Status:          domain.AllocationDraft,
		Version:         1,
	}

	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, otherID, s.orgID, domain.RoleReadOnly).Return(nil).Once()
	s.mockAllocationRepo.On("FindAllocationByID", ctx, allocation.AllocationID).Return(allocation, nil).Once()

	newAmount := decimal.NewFromInt(1500)
	_, err := s.service.UpdateAllocation(ctx, s.orgID, allocation.AllocationID, otherID, dto.UpdateAllocationRequest{
		RequestedAmount: &newAmount,
	})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestAllocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}
