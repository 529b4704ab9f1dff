package ledger

import "github.com/vereinskasse/kassenbuch/internal/models"

// TransactionStore is the append-only transaction log, ordered by
// insertion. Implementations must keep ListTransactions in insertion
// order; the recompute algorithm depends on it for determinism.
type TransactionStore interface {
	// ListTransactions returns all log entries for an event in insertion
	// order. eventID == "" returns the whole log.
	ListTransactions(eventID string) ([]*models.Transaction, error)
	AppendTransaction(txn *models.Transaction) error
	// UpdateTransaction replaces the entry with txn.ID in place. Returns
	// false when no entry matches.
	UpdateTransaction(txn *models.Transaction) (bool, error)
	// DeleteTransaction removes the entry by id. Returns false when no
	// entry matches.
	DeleteTransaction(id string) (bool, error)
	// DeleteEventTransactions removes every entry of one event.
	DeleteEventTransactions(eventID string) error
}

// BalanceStore holds one balance snapshot per event.
type BalanceStore interface {
	// GetBalance returns the event's snapshot, or nil when none exists.
	GetBalance(eventID string) (*models.EventBalance, error)
	PutBalance(balance *models.EventBalance) error
	DeleteBalance(eventID string) error
}

// RegisterDirectory holds the customized register set used when a new
// event's snapshot is created. Implementations fall back to the built-in
// defaults while no custom set has been saved.
type RegisterDirectory interface {
	ListRegisters() ([]models.Register, error)
	SaveRegisters(registers []models.Register) error
}

// EventStore holds the known bookkeeping events.
type EventStore interface {
	ListEvents() ([]*models.Event, error)
	// GetEvent returns the event, or nil when unknown.
	GetEvent(id string) (*models.Event, error)
	PutEvent(event *models.Event) error
	DeleteEvent(id string) error
}

// Store is the full persistence surface the engine operates on.
type Store interface {
	TransactionStore
	BalanceStore
	RegisterDirectory
	EventStore
}
