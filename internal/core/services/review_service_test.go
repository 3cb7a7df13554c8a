package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/core/services"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	mockEventRepo      *MockEventRepository
	mockExpenseRepo    *MockExpenseRepository
	mockAllocationRepo *MockAllocationRepository
	mockNotifRepo      *MockNotificationRepository
	mockUserRepo       *MockUserRepository
	mockAuthorizer     *MockOrganizationAuthorizer
	mockDispatcher     *MockNotificationDispatcher
	service            portssvc.ReviewSvcFacade

	orgID       string
	adminID     string
	requesterID string
	requester   *domain.User
}

func (s *ReviewServiceTestSuite) SetupTest() {
	s.mockEventRepo = new(MockEventRepository)
	s.mockExpenseRepo = new(MockExpenseRepository)
	s.mockAllocationRepo = new(MockAllocationRepository)
	s.mockNotifRepo = new(MockNotificationRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockAuthorizer = new(MockOrganizationAuthorizer)
	s.mockDispatcher = new(MockNotificationDispatcher)
	s.service = services.NewReviewService(
		s.mockEventRepo,
		s.mockExpenseRepo,
		s.mockAllocationRepo,
		s.mockNotifRepo,
		s.mockUserRepo,
		s.mockAuthorizer,
		s.mockDispatcher,
	)

	s.orgID = uuid.NewString()
	s.adminID = uuid.NewString()
	s.requesterID = uuid.NewString()
	s.requester = &domain.User{
		UserID: s.requesterID,
		Name:   "Pat Requester",
		Email:  "pat@example.org",
	}
}

func (s *ReviewServiceTestSuite) newEvent(status domain.EventStatus) *domain.EventRequest {
	return &domain.EventRequest{
		EventID:        uuid.NewString(),
		OrganizationID: s.orgID,
		RequesterID:    s.requesterID,
		Title:          "Spring Gathering",
		RoomID:         "main-hall",
		Status:         status,
		Version:        3,
	}
}

func (s *ReviewServiceTestSuite) expectRole(userID string, role domain.UserOrganizationRole) {
	s.mockAuthorizer.On("ResolveUserRole", mock.Anything, userID, s.orgID).Return(role, nil)
}

func (s *ReviewServiceTestSuite) TestApproveEventSendsNotification() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)
	s.mockUserRepo.On("FindUserByID", ctx, s.requesterID).Return(s.requester, nil).Once()
	s.mockEventRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockEventRepo.On("FindEventsForUpdate", ctx, mock.Anything, []string{event.EventID}).
		Return(map[string]domain.EventRequest{event.EventID: *event}, nil).Once()
	s.mockEventRepo.On("ApplyEventTransition", ctx, mock.Anything, mock.MatchedBy(func(e domain.EventRequest) bool {
		return e.Status == domain.EventApproved && e.Version == event.Version+1 && e.ReviewerID != nil && *e.ReviewerID == s.adminID
	}), event.Version, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("SaveNotificationInTx", ctx, mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.RecipientEmail == s.requester.Email && n.RequestID == event.EventID && n.Status == domain.NotificationPending
	})).Return(nil).Once()
	s.mockEventRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockEventRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	s.mockDispatcher.On("Dispatch", ctx, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("MarkNotificationDelivered", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	outcome, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.adminID, domain.ActionApprove, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().NoError(err)
	s.Require().NotNil(outcome)
	s.Equal(domain.EventApproved, outcome.Event.Status)
	s.Equal(event.Version+1, outcome.Event.Version)
	s.Equal([]string{event.EventID}, outcome.AffectedEventIDs)
	s.Equal(domain.NotificationSent, outcome.Notification)
	s.mockEventRepo.AssertExpectations(s.T())
	s.mockNotifRepo.AssertExpectations(s.T())
}

func (s *ReviewServiceTestSuite) TestRejectEventWithoutNotesFails() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)

	outcome, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.adminID, domain.ActionReject, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().ErrorIs(err, apperrors.ErrMissingReason)
	s.Nil(outcome)
	s.mockEventRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ReviewServiceTestSuite) TestApproveEventForbiddenForMember() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.adminID, domain.RoleMember)

	outcome, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.adminID, domain.ActionApprove, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.Nil(outcome)
}

func (s *ReviewServiceTestSuite) TestApproveTerminalEventFailsInvalidTransition() {
	ctx := context.Background()
	event := s.newEvent(domain.EventRejected)

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)

	_, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.adminID, domain.ActionApprove, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (s *ReviewServiceTestSuite) TestSeriesScopeOnNonRecurringFails() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)

	_, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.adminID, domain.ActionReject,
		domain.ReviewOptions{Scope: domain.ScopeAll, Notes: "double booked"})

	s.Require().ErrorIs(err, apperrors.ErrInvalidScope)
}

func (s *ReviewServiceTestSuite) TestSeriesScopeOnNonRejectActionFails() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)
	event.IsRecurring = true

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)

	_, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.adminID, domain.ActionApprove,
		domain.ReviewOptions{Scope: domain.ScopeAll})

	s.Require().ErrorIs(err, apperrors.ErrInvalidScope)
}

func (s *ReviewServiceTestSuite) TestRejectSeriesCascadesToAllOccurrences() {
	ctx := context.Background()
	root := s.newEvent(domain.EventPendingReview)
	root.IsRecurring = true
	childA := s.newEvent(domain.EventPendingReview)
	childA.IsRecurring = true
	childA.ParentEventID = &root.EventID
	childB := s.newEvent(domain.EventPendingReview)
	childB.IsRecurring = true
	childB.ParentEventID = &root.EventID
	ids := []string{root.EventID, childA.EventID, childB.EventID}

	s.mockEventRepo.On("FindEventByID", ctx, root.EventID).Return(root, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)
	s.mockEventRepo.On("FindChildrenByParentID", ctx, root.EventID).Return([]domain.EventRequest{*childA, *childB}, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, s.requesterID).Return(s.requester, nil).Once()
	s.mockEventRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockEventRepo.On("FindEventsForUpdate", ctx, mock.Anything, ids).
		Return(map[string]domain.EventRequest{
			root.EventID:   *root,
			childA.EventID: *childA,
			childB.EventID: *childB,
		}, nil).Once()
	s.mockEventRepo.On("ApplyEventTransition", ctx, mock.Anything, mock.MatchedBy(func(e domain.EventRequest) bool {
		return e.Status == domain.EventRejected && e.ReviewerNotes != nil
	}), root.Version, mock.Anything).Return(nil).Times(3)
	s.mockNotifRepo.On("SaveNotificationInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockEventRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockEventRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	s.mockDispatcher.On("Dispatch", ctx, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("MarkNotificationDelivered", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	outcome, err := s.service.ReviewEvent(ctx, s.orgID, root.EventID, s.adminID, domain.ActionReject,
		domain.ReviewOptions{Scope: domain.ScopeAll, Notes: "venue unavailable"})

	s.Require().NoError(err)
	s.Equal(ids, outcome.AffectedEventIDs)
	s.Equal(domain.EventRejected, outcome.Event.Status)
	s.mockEventRepo.AssertExpectations(s.T())
}

func (s *ReviewServiceTestSuite) TestRejectSeriesAbortsWhenOneMemberIsIllegal() {
	ctx := context.Background()
	root := s.newEvent(domain.EventPendingReview)
	root.IsRecurring = true
	child := s.newEvent(domain.EventDraft) // rejection is not legal from DRAFT
	child.IsRecurring = true
	child.ParentEventID = &root.EventID
	ids := []string{root.EventID, child.EventID}

	s.mockEventRepo.On("FindEventByID", ctx, root.EventID).Return(root, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)
	s.mockEventRepo.On("FindChildrenByParentID", ctx, root.EventID).Return([]domain.EventRequest{*child}, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, s.requesterID).Return(s.requester, nil).Once()
	s.mockEventRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockEventRepo.On("FindEventsForUpdate", ctx, mock.Anything, ids).
		Return(map[string]domain.EventRequest{root.EventID: *root, child.EventID: *child}, nil).Once()
	s.mockEventRepo.On("ApplyEventTransition", ctx, mock.Anything, mock.Anything, root.Version, mock.Anything).Return(nil).Maybe()
	s.mockEventRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := s.service.ReviewEvent(ctx, s.orgID, root.EventID, s.adminID, domain.ActionReject,
		domain.ReviewOptions{Scope: domain.ScopeAll, Notes: "venue unavailable"})

	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
	s.mockEventRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *ReviewServiceTestSuite) TestStaleEventReviewRollsBack() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)
	s.mockUserRepo.On("FindUserByID", ctx, s.requesterID).Return(s.requester, nil).Once()
	s.mockEventRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockEventRepo.On("FindEventsForUpdate", ctx, mock.Anything, []string{event.EventID}).
		Return(map[string]domain.EventRequest{event.EventID: *event}, nil).Once()
	s.mockEventRepo.On("ApplyEventTransition", ctx, mock.Anything, mock.Anything, event.Version, mock.Anything).
		Return(apperrors.ErrStaleState).Once()
	s.mockEventRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.adminID, domain.ActionApprove, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().ErrorIs(err, apperrors.ErrStaleState)
	s.mockEventRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *ReviewServiceTestSuite) TestDispatchFailureDoesNotUndoTransition() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)
	dispatchErr := errors.New("smtp connect refused")

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)
	s.mockUserRepo.On("FindUserByID", ctx, s.requesterID).Return(s.requester, nil).Once()
	s.mockEventRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockEventRepo.On("FindEventsForUpdate", ctx, mock.Anything, []string{event.EventID}).
		Return(map[string]domain.EventRequest{event.EventID: *event}, nil).Once()
	s.mockEventRepo.On("ApplyEventTransition", ctx, mock.Anything, mock.Anything, event.Version, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("SaveNotificationInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockEventRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockEventRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	s.mockDispatcher.On("Dispatch", ctx, mock.Anything).Return(dispatchErr).Once()
	s.mockNotifRepo.On("MarkNotificationFailed", ctx, mock.Anything, dispatchErr.Error(), mock.Anything).Return(nil).Once()

	outcome, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.adminID, domain.ActionApprove, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().NoError(err)
	s.Equal(domain.EventApproved, outcome.Event.Status)
	s.Equal(domain.NotificationFailed, outcome.Notification)
	s.mockNotifRepo.AssertExpectations(s.T())
}

func (s *ReviewServiceTestSuite) TestSubmitEventByRequesterSkipsNotification() {
	ctx := context.Background()
	event := s.newEvent(domain.EventDraft)

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.requesterID, domain.RoleMember)
	s.mockEventRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockEventRepo.On("FindEventsForUpdate", ctx, mock.Anything, []string{event.EventID}).
		Return(map[string]domain.EventRequest{event.EventID: *event}, nil).Once()
	s.mockEventRepo.On("ApplyEventTransition", ctx, mock.Anything, mock.MatchedBy(func(e domain.EventRequest) bool {
		return e.Status == domain.EventPendingReview
	}), event.Version, mock.Anything).Return(nil).Once()
	s.mockEventRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockEventRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	outcome, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.requesterID, domain.ActionSubmit, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().NoError(err)
	s.Equal(domain.NotificationNone, outcome.Notification)
	s.mockNotifRepo.AssertNotCalled(s.T(), "SaveNotificationInTx", mock.Anything, mock.Anything, mock.Anything)
	s.mockDispatcher.AssertNotCalled(s.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (s *ReviewServiceTestSuite) newExpense(status domain.ExpenseStatus) *domain.ExpenseRequest {
	return &domain.ExpenseRequest{
		ExpenseID:      uuid.NewString(),
		OrganizationID: s.orgID,
		RequesterID:    s.requesterID,
		MinistryID:     uuid.NewString(),
		Amount:         decimal.NewFromInt(250),
		Justification:  "supplies",
		Status:         status,
		Version:        1,
	}
}

func (s *ReviewServiceTestSuite) TestLeaderApprovalAdvancesToTreasury() {
	ctx := context.Background()
	expense := s.newExpense(domain.ExpensePendingLeader)
	leaderID := uuid.NewString()

	s.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.expectRole(leaderID, domain.RoleMinistryLeader)
	s.mockUserRepo.On("FindUserByID", ctx, s.requesterID).Return(s.requester, nil).Once()
	s.mockExpenseRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockExpenseRepo.On("FindExpenseForUpdate", ctx, mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	s.mockExpenseRepo.On("ApplyExpenseTransition", ctx, mock.Anything, mock.MatchedBy(func(e domain.ExpenseRequest) bool {
		return e.Status == domain.ExpensePendingTreasury && e.Version == expense.Version+1
	}), expense.Version, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("SaveNotificationInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockExpenseRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockExpenseRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	s.mockDispatcher.On("Dispatch", ctx, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("MarkNotificationDelivered", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	outcome, err := s.service.ReviewExpense(ctx, s.orgID, expense.ExpenseID, leaderID, domain.ActionApprove, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().NoError(err)
	s.Equal(domain.ExpensePendingTreasury, outcome.Expense.Status)
	s.Equal(domain.NotificationSent, outcome.Notification)
}

func (s *ReviewServiceTestSuite) TestTreasuryCannotActAtLeaderStage() {
	ctx := context.Background()
	expense := s.newExpense(domain.ExpensePendingLeader)
	treasurerID := uuid.NewString()

	s.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.expectRole(treasurerID, domain.RoleTreasury)

	_, err := s.service.ReviewExpense(ctx, s.orgID, expense.ExpenseID, treasurerID, domain.ActionApprove, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ReviewServiceTestSuite) TestExpenseDenyRequiresNotes() {
	ctx := context.Background()
	expense := s.newExpense(domain.ExpensePendingTreasury)
	treasurerID := uuid.NewString()

	s.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.expectRole(treasurerID, domain.RoleTreasury)

	_, err := s.service.ReviewExpense(ctx, s.orgID, expense.ExpenseID, treasurerID, domain.ActionDeny, domain.ReviewOptions{Scope: domain.ScopeSingle, Notes: "   "})

	s.Require().ErrorIs(err, apperrors.ErrMissingReason)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ReviewServiceTestSuite) TestRequesterCancelsOwnExpense() {
	ctx := context.Background()
	expense := s.newExpense(domain.ExpensePendingFinance)

	s.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.expectRole(s.requesterID, domain.RoleMember)
	s.mockExpenseRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockExpenseRepo.On("FindExpenseForUpdate", ctx, mock.Anything, expense.ExpenseID).Return(expense, nil).Once()
	s.mockExpenseRepo.On("ApplyExpenseTransition", ctx, mock.Anything, mock.MatchedBy(func(e domain.ExpenseRequest) bool {
		return e.Status == domain.ExpenseCancelled
	}), expense.Version, mock.Anything).Return(nil).Once()
	s.mockExpenseRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockExpenseRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	outcome, err := s.service.ReviewExpense(ctx, s.orgID, expense.ExpenseID, s.requesterID, domain.ActionCancel, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().NoError(err)
	s.Equal(domain.ExpenseCancelled, outcome.Expense.Status)
	s.Equal(domain.NotificationNone, outcome.Notification)
}

func (s *ReviewServiceTestSuite) newAllocation(status domain.AllocationStatus) *domain.AllocationRequest {
	return &domain.AllocationRequest{
		AllocationID:    uuid.NewString(),
		OrganizationID:  s.orgID,
		RequesterID:     s.requesterID,
		FiscalYearID:    "FY2026",
		MinistryID:      uuid.NewString(),
		PeriodType:      domain.PeriodAnnual,
		RequestedAmount: decimal.NewFromInt(1000),
		Status:          status,
		Version:         2,
	}
}

func (s *ReviewServiceTestSuite) TestPartialAllocationApproval() {
	ctx := context.Background()
	allocation := s.newAllocation(domain.AllocationPending)
	financeID := uuid.NewString()
	granted := decimal.NewFromInt(600)

	s.mockAllocationRepo.On("FindAllocationByID", ctx, allocation.AllocationID).Return(allocation, nil).Once()
	s.expectRole(financeID, domain.RoleFinance)
	s.mockUserRepo.On("FindUserByID", ctx, s.requesterID).Return(s.requester, nil).Once()
	s.mockAllocationRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockAllocationRepo.On("FindAllocationForUpdate", ctx, mock.Anything, allocation.AllocationID).Return(allocation, nil).Once()
	s.mockAllocationRepo.On("ApplyAllocationTransition", ctx, mock.Anything, mock.MatchedBy(func(a domain.AllocationRequest) bool {
		return a.Status == domain.AllocationPartiallyApproved && a.ApprovedAmount != nil && a.ApprovedAmount.Equal(granted)
	}), allocation.Version, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("SaveNotificationInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockAllocationRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockAllocationRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	s.mockDispatcher.On("Dispatch", ctx, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("MarkNotificationDelivered", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	outcome, err := s.service.ReviewAllocation(ctx, s.orgID, allocation.AllocationID, financeID, domain.ActionApprove,
		domain.ReviewOptions{Scope: domain.ScopeSingle, ApprovedAmount: &granted})

	s.Require().NoError(err)
	s.Equal(domain.AllocationPartiallyApproved, outcome.Allocation.Status)
	s.Require().NotNil(outcome.Allocation.ApprovedAmount)
	s.True(outcome.Allocation.ApprovedAmount.Equal(granted))
}

func (s *ReviewServiceTestSuite) TestFullAllocationApprovalWithoutAmount() {
	ctx := context.Background()
	allocation := s.newAllocation(domain.AllocationPending)
	financeID := uuid.NewString()

	s.mockAllocationRepo.On("FindAllocationByID", ctx, allocation.AllocationID).Return(allocation, nil).Once()
	s.expectRole(financeID, domain.RoleFinance)
	s.mockUserRepo.On("FindUserByID", ctx, s.requesterID).Return(s.requester, nil).Once()
	s.mockAllocationRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockAllocationRepo.On("FindAllocationForUpdate", ctx, mock.Anything, allocation.AllocationID).Return(allocation, nil).Once()
	s.mockAllocationRepo.On("ApplyAllocationTransition", ctx, mock.Anything, mock.MatchedBy(func(a domain.AllocationRequest) bool {
		return a.Status == domain.AllocationApproved && a.ApprovedAmount != nil && a.ApprovedAmount.Equal(allocation.RequestedAmount)
	}), allocation.Version, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("SaveNotificationInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.mockAllocationRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	s.mockAllocationRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	s.mockDispatcher.On("Dispatch", ctx, mock.Anything).Return(nil).Once()
	s.mockNotifRepo.On("MarkNotificationDelivered", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	outcome, err := s.service.ReviewAllocation(ctx, s.orgID, allocation.AllocationID, financeID, domain.ActionApprove,
		domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().NoError(err)
	s.Equal(domain.AllocationApproved, outcome.Allocation.Status)
}

func (s *ReviewServiceTestSuite) TestAllocationApprovalRejectsExcessAmount() {
	ctx := context.Background()
	allocation := s.newAllocation(domain.AllocationPending)
	financeID := uuid.NewString()
	excess := decimal.NewFromInt(2000)

	s.mockAllocationRepo.On("FindAllocationByID", ctx, allocation.AllocationID).Return(allocation, nil).Once()
	s.expectRole(financeID, domain.RoleFinance)

	_, err := s.service.ReviewAllocation(ctx, s.orgID, allocation.AllocationID, financeID, domain.ActionApprove,
		domain.ReviewOptions{Scope: domain.ScopeSingle, ApprovedAmount: &excess})

	s.Require().ErrorIs(err, apperrors.ErrInvalidAmount)
	s.mockAllocationRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ReviewServiceTestSuite) TestReviewEventFromAnotherOrganizationIsNotFound() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)
	event.OrganizationID = uuid.NewString()

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()

	_, err := s.service.ReviewEvent(ctx, s.orgID, event.EventID, s.adminID, domain.ActionApprove, domain.ReviewOptions{Scope: domain.ScopeSingle})

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ReviewServiceTestSuite) TestLegalEventActionsForAdmin() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(s.adminID, domain.RoleAdmin)

	actions, err := s.service.LegalEventActions(ctx, s.orgID, event.EventID, s.adminID)

	s.Require().NoError(err)
	s.Equal([]domain.ReviewAction{domain.ActionApprove, domain.ActionReject}, actions)
}

func (s *ReviewServiceTestSuite) TestLegalEventActionsEmptyForReadOnly() {
	ctx := context.Background()
	event := s.newEvent(domain.EventPendingReview)
	readerID := uuid.NewString()

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()
	s.expectRole(readerID, domain.RoleReadOnly)

	actions, err := s.service.LegalEventActions(ctx, s.orgID, event.EventID, readerID)

	s.Require().NoError(err)
	s.Empty(actions)
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
