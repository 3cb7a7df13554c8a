package models

import (
	"time"
)

// User represents a user row.
// Email doubles as the login identifier and notification recipient address.
type User struct {
	UserID       string `json:"userID" db:"user_id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
