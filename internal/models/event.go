package models

import "time"

// EventStatus mirrors the status column of event_requests.
type EventStatus string

// EventRequest represents an event request row. Series children reference the
// root via parent_event_id; the schema keeps series two levels deep.
type EventRequest struct {
	EventID        string      `db:"event_id"`
	OrganizationID string      `db:"organization_id"`
	RequesterID    string      `db:"requester_id"`
	Title          string      `db:"title"`
	Description    string      `db:"description"`
	RoomID         string      `db:"room_id"`
	StartsAt       time.Time   `db:"starts_at"`
	EndsAt         time.Time   `db:"ends_at"`
	IsRecurring    bool        `db:"is_recurring"`
	ParentEventID  *string     `db:"parent_event_id"`
	Status         EventStatus `db:"status"`
	ReviewerID     *string     `db:"reviewer_id"`
	ReviewerNotes  *string     `db:"reviewer_notes"`
	Version        int64       `db:"version"`
	AuditFields

	// RequesterName is populated by joins against users, not stored on the row.
	RequesterName string `db:"requester_name"`
}
