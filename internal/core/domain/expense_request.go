package domain

import "github.com/shopspring/decimal"

// ExpenseStatus indicates where an expense request sits in its approval chain.
// The status is the stage: approval by one stage's reviewer moves the record
// directly into the next pending stage.
type ExpenseStatus string

const (
	ExpenseDraft           ExpenseStatus = "DRAFT"
	ExpensePendingLeader   ExpenseStatus = "PENDING_LEADER"
	ExpensePendingTreasury ExpenseStatus = "PENDING_TREASURY"
	ExpensePendingFinance  ExpenseStatus = "PENDING_FINANCE"
	ExpenseCompleted       ExpenseStatus = "COMPLETED"
	ExpenseLeaderDenied    ExpenseStatus = "LEADER_DENIED"
	ExpenseTreasuryDenied  ExpenseStatus = "TREASURY_DENIED"
	ExpenseFinanceDenied   ExpenseStatus = "FINANCE_DENIED"
	ExpenseCancelled       ExpenseStatus = "CANCELLED"
)

// ExpenseRequest is a request to spend money out of a ministry's budget.
type ExpenseRequest struct {
	ExpenseID      string          `json:"expenseID"` // Primary Key (e.g., UUID)
	OrganizationID string          `json:"organizationID"`
	RequesterID    string          `json:"requesterID"`
	RequesterName  string          `json:"requesterName"`
	MinistryID     string          `json:"ministryID"`
	Amount         decimal.Decimal `json:"amount"`
	Justification  string          `json:"justification"`
	Status         ExpenseStatus   `json:"status"`
	ReviewerID     *string         `json:"reviewerID,omitempty"`
	ReviewerNotes  *string         `json:"reviewerNotes,omitempty"`
	Version        int64           `json:"version"`
	AuditFields
}
