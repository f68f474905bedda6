package models

import "time"

// Event represents an entry in the account audit trail.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "audit.login", "audit.user.delete"
	Level     string    `json:"level"` // e.g., "info", "warn"
	Message   string    `json:"message"`
	UserID    *string   `json:"userId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
