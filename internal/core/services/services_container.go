package services

import (
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The dispatcher may be nil; review notifications then stay queued in the outbox.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, dispatcher portssvc.NotificationDispatcher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize the organization service first since it is the authorizer
	// every other service depends on
	container.Organization = NewOrganizationService(
		repos.OrganizationRepo,
		repos.UserRepo,
	)
	authorizer := container.Organization.(portssvc.OrganizationAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewTokenService(cfg)

	container.Event = NewEventService(repos.EventRepo, authorizer)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.OrganizationRepo, authorizer)
	container.Allocation = NewAllocationService(repos.AllocationRepo, repos.OrganizationRepo, authorizer)

	container.Review = NewReviewService(
		repos.EventRepo,
		repos.ExpenseRepo,
		repos.AllocationRepo,
		repos.NotificationRepo,
		repos.UserRepo,
		authorizer,
		dispatcher,
	)

	container.Notification = NewNotificationService(repos.NotificationRepo, authorizer, dispatcher)

	return container
}
