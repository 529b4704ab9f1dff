package store

import (
	"sort"
	"sync"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// Memory is an in-memory implementation of the same persistence surface
// as Store. It backs the engine in tests and keeps the engine portable
// across storage backends.
type Memory struct {
	mu        sync.Mutex
	txns      []*models.Transaction
	balances  map[string]*models.EventBalance
	registers []models.Register
	events    map[string]*models.Event
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		balances: make(map[string]*models.EventBalance),
		events:   make(map[string]*models.Event),
	}
}

func (m *Memory) ListTransactions(eventID string) ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*models.Transaction
	for _, txn := range m.txns {
		if eventID == "" || txn.EventID == eventID {
			out = append(out, txn.Clone())
		}
	}
	return out, nil
}

func (m *Memory) AppendTransaction(txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txn.Clone())
	return nil
}

func (m *Memory) UpdateTransaction(txn *models.Transaction) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.txns {
		if existing.ID == txn.ID {
			m.txns[i] = txn.Clone()
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) DeleteTransaction(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.txns {
		if existing.ID == id {
			m.txns = append(m.txns[:i], m.txns[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) DeleteEventTransactions(eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.txns[:0]
	for _, txn := range m.txns {
		if txn.EventID != eventID {
			kept = append(kept, txn)
		}
	}
	m.txns = kept
	return nil
}

func (m *Memory) GetBalance(eventID string) (*models.EventBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance, ok := m.balances[eventID]
	if !ok {
		return nil, nil
	}
	return balance.Clone(), nil
}

func (m *Memory) PutBalance(balance *models.EventBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[balance.EventID] = balance.Clone()
	return nil
}

func (m *Memory) DeleteBalance(eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.balances, eventID)
	return nil
}

func (m *Memory) ListRegisters() ([]models.Register, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registers == nil {
		return models.DefaultRegisters(), nil
	}
	return models.CloneRegisters(m.registers), nil
}

func (m *Memory) SaveRegisters(registers []models.Register) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registers = models.CloneRegisters(registers)
	return nil
}

func (m *Memory) ListEvents() ([]*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*models.Event, 0, len(m.events))
	for _, event := range m.events {
		clone := *event
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) GetEvent(id string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	clone := *event
	return &clone, nil
}

func (m *Memory) PutEvent(event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *event
	m.events[event.ID] = &clone
	return nil
}

func (m *Memory) DeleteEvent(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.events, id)
	return nil
}
