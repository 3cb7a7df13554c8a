package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock OrganizationRepository ---
type MockOrganizationRepository struct {
	mock.Mock
}

var _ portsrepo.OrganizationRepositoryFacade = (*MockOrganizationRepository)(nil)

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization) error {
	args := m.Called(ctx, organization)
	return args.Error(0)
}

func (m *MockOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizationUsers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, role)
	return args.Error(0)
}

func (m *MockOrganizationRepository) SaveMinistry(ctx context.Context, ministry domain.Ministry) error {
	args := m.Called(ctx, ministry)
	return args.Error(0)
}

func (m *MockOrganizationRepository) FindMinistryByID(ctx context.Context, ministryID string) (*domain.Ministry, error) {
	args := m.Called(ctx, ministryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ministry), args.Error(1)
}

func (m *MockOrganizationRepository) ListMinistriesByOrganization(ctx context.Context, organizationID string) ([]domain.Ministry, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ministry), args.Error(1)
}

// --- Mock EventRepository ---
type MockEventRepository struct {
	mock.Mock
}

var _ portsrepo.EventRepositoryWithTx = (*MockEventRepository)(nil)

func (m *MockEventRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockEventRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEventRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.EventRequest, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventRequest), args.Error(1)
}

func (m *MockEventRepository) FindChildrenByParentID(ctx context.Context, parentEventID string) ([]domain.EventRequest, error) {
	args := m.Called(ctx, parentEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventRequest), args.Error(1)
}

func (m *MockEventRepository) ListEventsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, status *domain.EventStatus) ([]domain.EventRequest, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.EventRequest), token, args.Error(2)
}

func (m *MockEventRepository) SaveEvent(ctx context.Context, event domain.EventRequest) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) SaveEventSeries(ctx context.Context, parent domain.EventRequest, children []domain.EventRequest) error {
	args := m.Called(ctx, parent, children)
	return args.Error(0)
}

func (m *MockEventRepository) UpdateEventContent(ctx context.Context, event domain.EventRequest) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) FindEventsForUpdate(ctx context.Context, tx pgx.Tx, eventIDs []string) (map[string]domain.EventRequest, error) {
	args := m.Called(ctx, tx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.EventRequest), args.Error(1)
}

func (m *MockEventRepository) ApplyEventTransition(ctx context.Context, tx pgx.Tx, event domain.EventRequest, expectedVersion int64, updatedAt time.Time) error {
	args := m.Called(ctx, tx, event, expectedVersion, updatedAt)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryWithTx = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockExpenseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockExpenseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseRequest, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseRequest), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, status *domain.ExpenseStatus) ([]domain.ExpenseRequest, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.ExpenseRequest), token, args.Error(2)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.ExpenseRequest) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpenseContent(ctx context.Context, expense domain.ExpenseRequest) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.ExpenseRequest, error) {
	args := m.Called(ctx, tx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseRequest), args.Error(1)
}

func (m *MockExpenseRepository) ApplyExpenseTransition(ctx context.Context, tx pgx.Tx, expense domain.ExpenseRequest, expectedVersion int64, updatedAt time.Time) error {
	args := m.Called(ctx, tx, expense, expectedVersion, updatedAt)
	return args.Error(0)
}

// --- Mock AllocationRepository ---
type MockAllocationRepository struct {
	mock.Mock
}

var _ portsrepo.AllocationRepositoryWithTx = (*MockAllocationRepository)(nil)

func (m *MockAllocationRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockAllocationRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAllocationRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.AllocationRequest, error) {
	args := m.Called(ctx, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AllocationRequest), args.Error(1)
}

func (m *MockAllocationRepository) ListAllocationsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, fiscalYearID *string) ([]domain.AllocationRequest, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken, fiscalYearID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.AllocationRequest), token, args.Error(2)
}

func (m *MockAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.AllocationRequest) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) UpdateAllocationContent(ctx context.Context, allocation domain.AllocationRequest) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) FindAllocationForUpdate(ctx context.Context, tx pgx.Tx, allocationID string) (*domain.AllocationRequest, error) {
	args := m.Called(ctx, tx, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AllocationRequest), args.Error(1)
}

func (m *MockAllocationRepository) ApplyAllocationTransition(ctx context.Context, tx pgx.Tx, allocation domain.AllocationRequest, expectedVersion int64, updatedAt time.Time) error {
	args := m.Called(ctx, tx, allocation, expectedVersion, updatedAt)
	return args.Error(0)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) ListPendingNotifications(ctx context.Context, organizationID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, organizationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) SaveNotificationInTx(ctx context.Context, tx pgx.Tx, notification domain.Notification) error {
	args := m.Called(ctx, tx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkNotificationDelivered(ctx context.Context, notificationID string, deliveredAt time.Time) error {
	args := m.Called(ctx, notificationID, deliveredAt)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkNotificationFailed(ctx context.Context, notificationID string, lastError string, attemptedAt time.Time) error {
	args := m.Called(ctx, notificationID, lastError, attemptedAt)
	return args.Error(0)
}

// --- Mock OrganizationAuthorizer ---
type MockOrganizationAuthorizer struct {
	mock.Mock
}

var _ portssvc.OrganizationAuthorizerSvc = (*MockOrganizationAuthorizer)(nil)

func (m *MockOrganizationAuthorizer) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

func (m *MockOrganizationAuthorizer) ResolveUserRole(ctx context.Context, userID, organizationID string) (domain.UserOrganizationRole, error) {
	args := m.Called(ctx, userID, organizationID)
	role, _ := args.Get(0).(domain.UserOrganizationRole)
	return role, args.Error(1)
}

// --- Mock NotificationDispatcher ---
type MockNotificationDispatcher struct {
	mock.Mock
}

var _ portssvc.NotificationDispatcher = (*MockNotificationDispatcher)(nil)

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
