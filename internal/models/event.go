package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a bookkeeping context (one festival, one season) with its own
// isolated transaction log and balance snapshot.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates an event with a fresh id.
func NewEvent(name string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
