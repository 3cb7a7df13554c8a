package models

import "github.com/shopspring/decimal"

// ExpenseStatus mirrors the status column of expense_requests.
type ExpenseStatus string

// ExpenseRequest represents an expense request row.
type ExpenseRequest struct {
	ExpenseID      string          `db:"expense_id"`
	OrganizationID string          `db:"organization_id"`
	RequesterID    string          `db:"requester_id"`
	MinistryID     string          `db:"ministry_id"`
	Amount         decimal.Decimal `db:"amount"`
	Justification  string          `db:"justification"`
	Status         ExpenseStatus   `db:"status"`
	ReviewerID     *string         `db:"reviewer_id"`
	ReviewerNotes  *string         `db:"reviewer_notes"`
	Version        int64           `db:"version"`
	AuditFields

	// RequesterName is populated by joins against users, not stored on the row.
	RequesterName string `db:"requester_name"`
}
