package mapping

import (
	"github.com/gracebase/steward/internal/core/domain"
	"github.com/gracebase/steward/internal/models"
)

// ToModelExpenseRequest converts a domain ExpenseRequest to a model ExpenseRequest
func ToModelExpenseRequest(d domain.ExpenseRequest) models.ExpenseRequest {
	return models.ExpenseRequest{
		ExpenseID:      d.ExpenseID,
		OrganizationID: d.OrganizationID,
		RequesterID:    d.RequesterID,
		MinistryID:     d.MinistryID,
		Amount:         d.Amount,
		Justification:  d.Justification,
		Status:         models.ExpenseStatus(d.Status),
		ReviewerID:     d.ReviewerID,
		ReviewerNotes:  d.ReviewerNotes,
		Version:        d.Version,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		RequesterName:  d.RequesterName,
	}
}

// ToDomainExpenseRequest converts a model ExpenseRequest to a domain ExpenseRequest
func ToDomainExpenseRequest(m models.ExpenseRequest) domain.ExpenseRequest {
	return domain.ExpenseRequest{
		ExpenseID:      m.ExpenseID,
		OrganizationID: m.OrganizationID,
		RequesterID:    m.RequesterID,
		RequesterName:  m.RequesterName,
		MinistryID:     m.MinistryID,
		Amount:         m.Amount,
		Justification:  m.Justification,
		Status:         domain.ExpenseStatus(m.Status),
		ReviewerID:     m.ReviewerID,
		ReviewerNotes:  m.ReviewerNotes,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseRequestSlice converts a slice of model ExpenseRequests to domain
func ToDomainExpenseRequestSlice(ms []models.ExpenseRequest) []domain.ExpenseRequest {
	ds := make([]domain.ExpenseRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseRequest(m)
	}
	return ds
}
