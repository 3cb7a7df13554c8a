package mapping

import (
	"github.com/gracebase/steward/internal/core/domain"
	"github.com/gracebase/steward/internal/models"
)

// ToModelAllocationRequest converts a domain AllocationRequest to a model row.
// The period breakdown maps separately via ToModelAllocationPeriods.
func ToModelAllocationRequest(d domain.AllocationRequest) models.AllocationRequest {
	return models.AllocationRequest{
		AllocationID:    d.AllocationID,
		OrganizationID:  d.OrganizationID,
		RequesterID:     d.RequesterID,
		FiscalYearID:    d.FiscalYearID,
		MinistryID:      d.MinistryID,
		PeriodType:      models.PeriodType(d.PeriodType),
		RequestedAmount: d.RequestedAmount,
		ApprovedAmount:  d.ApprovedAmount,
		Status:          models.AllocationStatus(d.Status),
		ReviewerID:      d.ReviewerID,
		ReviewerNotes:   d.ReviewerNotes,
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		RequesterName:   d.RequesterName,
	}
}

// ToDomainAllocationRequest converts a model row plus its period rows to domain
func ToDomainAllocationRequest(m models.AllocationRequest, periods []models.AllocationPeriod) domain.AllocationRequest {
	breakdown := make([]domain.PeriodEntry, len(periods))
	for i, p := range periods {
		breakdown[i] = domain.PeriodEntry{PeriodLabel: p.PeriodLabel, Amount: p.Amount}
	}
	return domain.AllocationRequest{
		AllocationID:    m.AllocationID,
		OrganizationID:  m.OrganizationID,
		RequesterID:     m.RequesterID,
		RequesterName:   m.RequesterName,
		FiscalYearID:    m.FiscalYearID,
		MinistryID:      m.MinistryID,
		PeriodType:      domain.PeriodType(m.PeriodType),
		RequestedAmount: m.RequestedAmount,
		ApprovedAmount:  m.ApprovedAmount,
		Breakdown:       breakdown,
		Status:          domain.AllocationStatus(m.Status),
		ReviewerID:      m.ReviewerID,
		ReviewerNotes:   m.ReviewerNotes,
		Version:         m.Version,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAllocationPeriods converts a domain breakdown to period rows.
func ToModelAllocationPeriods(allocationID string, breakdown []domain.PeriodEntry) []models.AllocationPeriod {
	rows := make([]models.AllocationPeriod, len(breakdown))
	for i, entry := range breakdown {
		rows[i] = models.AllocationPeriod{
			AllocationID: allocationID,
			PeriodLabel:  entry.PeriodLabel,
			Amount:       entry.Amount,
			SortOrder:    i,
		}
	}
	return rows
}
