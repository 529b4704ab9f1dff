package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// CreateEvent registers a new bookkeeping event and lazily prepares its
// zeroed balance snapshot.
func (e *Engine) CreateEvent(name string) (*models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("event name must not be empty")
	}

	event := models.NewEvent(name)
	if err := e.store.PutEvent(event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	if _, err := e.Balance(event.ID); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns all known events.
func (e *Engine) ListEvents() ([]*models.Event, error) {
	return e.store.ListEvents()
}

// DeleteEvent removes an event along with its transactions and balance
// snapshot.
func (e *Engine) DeleteEvent(eventID string) error {
	unlock := e.lockEvent(eventID)
	defer unlock()

	event, err := e.store.GetEvent(eventID)
	if err != nil {
		return fmt.Errorf("load event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}

	if err := e.store.DeleteEventTransactions(eventID); err != nil {
		return fmt.Errorf("delete transactions: %w", err)
	}
	if err := e.store.DeleteBalance(eventID); err != nil {
		return fmt.Errorf("delete balance: %w", err)
	}
	if err := e.store.DeleteEvent(eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
