package domain

import "time"

// EventStatus indicates where an event request sits in its review lifecycle.
type EventStatus string

const (
	EventDraft         EventStatus = "DRAFT"
	EventPendingReview EventStatus = "PENDING_REVIEW"
	EventApproved      EventStatus = "APPROVED"
	EventPublished     EventStatus = "PUBLISHED"
	EventRejected      EventStatus = "REJECTED"
)

// EventRequest is a request to schedule an event (optionally a recurring series).
// A series is the parent record plus every record whose ParentEventID equals
// the parent's id; series are exactly two levels deep.
type EventRequest struct {
	EventID        string      `json:"eventID"` // Primary Key (e.g., UUID)
	OrganizationID string      `json:"organizationID"`
	RequesterID    string      `json:"requesterID"`
	RequesterName  string      `json:"requesterName"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	RoomID         string      `json:"roomID"`
	StartsAt       time.Time   `json:"startsAt"`
	EndsAt         time.Time   `json:"endsAt"`
	IsRecurring    bool        `json:"isRecurring"`
	ParentEventID  *string     `json:"parentEventID,omitempty"`
	Status         EventStatus `json:"status"`
	ReviewerID     *string     `json:"reviewerID,omitempty"`
	ReviewerNotes  *string     `json:"reviewerNotes,omitempty"`
	Version        int64       `json:"version"` // bumped on every transition; guards concurrent reviews
	AuditFields
}

// IsSeriesRoot reports whether the record is the parent of a recurring series.
func (e *EventRequest) IsSeriesRoot() bool {
	return e.IsRecurring && e.ParentEventID == nil
}
