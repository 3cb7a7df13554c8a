package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	EventRepo        EventRepositoryWithTx
	ExpenseRepo      ExpenseRepositoryWithTx
	AllocationRepo   AllocationRepositoryWithTx
	NotificationRepo NotificationRepositoryFacade
}
