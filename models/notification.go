package models

import (
	"time"
)

// Notification is an agent-facing notification row.
type Notification struct {
	ID        int       `json:"id" db:"id"`
	AgentID   int       `json:"agentId" db:"agent_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
