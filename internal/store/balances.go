package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// GetBalance returns the event's balance snapshot, or nil when none has
// been created yet.
func (s *Store) GetBalance(eventID string) (*models.EventBalance, error) {
	var balance *models.EventBalance

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketBalances))
		data := b.Get([]byte(eventID))
		if data == nil {
			return nil
		}
		balance = &models.EventBalance{}
		if err := json.Unmarshal(data, balance); err != nil {
			return fmt.Errorf("failed to unmarshal balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// PutBalance writes the event's balance snapshot.
func (s *Store) PutBalance(balance *models.EventBalance) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketBalances))
		data, err := json.Marshal(balance)
		if err != nil {
			return fmt.Errorf("failed to marshal balance: %w", err)
		}
		return b.Put([]byte(balance.EventID), data)
	})
}

// DeleteBalance removes the event's balance snapshot.
func (s *Store) DeleteBalance(eventID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketBalances))
		return b.Delete([]byte(eventID))
	})
}
