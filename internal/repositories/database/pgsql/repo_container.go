package pgsql

import (
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		EventRepo:        newPgxEventRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		AllocationRepo:   newPgxAllocationRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
