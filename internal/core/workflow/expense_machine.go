package workflow

import "github.com/gracebase/steward/internal/core/domain"

var (
	leaderOrAdmin   = []domain.UserOrganizationRole{domain.RoleMinistryLeader, domain.RoleAdmin}
	treasuryOrAdmin = []domain.UserOrganizationRole{domain.RoleTreasury, domain.RoleAdmin}
	financeOrAdmin  = []domain.UserOrganizationRole{domain.RoleFinance, domain.RoleAdmin}
)

var expenseMachine = NewMachine(domain.KindExpense, map[domain.ExpenseStatus]map[domain.ReviewAction]Rule[domain.ExpenseStatus]{
	domain.ExpenseDraft: {
		domain.ActionSubmit: {To: domain.ExpensePendingLeader, RequesterOnly: true},
		domain.ActionCancel: {To: domain.ExpenseCancelled, RequesterOnly: true},
	},
	domain.ExpensePendingLeader: {
		domain.ActionApprove: {To: domain.ExpensePendingTreasury, Roles: leaderOrAdmin, Notify: true},
		domain.ActionDeny:    {To: domain.ExpenseLeaderDenied, Roles: leaderOrAdmin, RequiresNotes: true, Notify: true},
		domain.ActionCancel:  {To: domain.ExpenseCancelled, RequesterOnly: true},
	},
	domain.ExpensePendingTreasury: {
		domain.ActionApprove: {To: domain.ExpensePendingFinance, Roles: treasuryOrAdmin, Notify: true},
		domain.ActionDeny:    {To: domain.ExpenseTreasuryDenied, Roles: treasuryOrAdmin, RequiresNotes: true, Notify: true},
		domain.ActionCancel:  {To: domain.ExpenseCancelled, RequesterOnly: true},
	},
	domain.ExpensePendingFinance: {
		domain.ActionApprove: {To: domain.ExpenseCompleted, Roles: financeOrAdmin, Notify: true},
		domain.ActionDeny:    {To: domain.ExpenseFinanceDenied, Roles: financeOrAdmin, RequiresNotes: true, Notify: true},
		domain.ActionCancel:  {To: domain.ExpenseCancelled, RequesterOnly: true},
	},
})

// Expense returns the status machine governing expense requests: a linear
// role-gated chain (leader, treasury, finance) with per-stage denial. Every
// denied state and CANCELLED are terminal.
func Expense() *Machine[domain.ExpenseStatus] {
	return expenseMachine
}
