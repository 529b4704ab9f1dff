package store

import (
	"encoding/json"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// ListEvents returns all known events, oldest first.
func (s *Store) ListEvents() ([]*models.Event, error) {
	var events []*models.Event

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEvents))
		return b.ForEach(func(_, v []byte) error {
			var event models.Event
			if err := json.Unmarshal(v, &event); err != nil {
				return fmt.Errorf("failed to unmarshal event: %w", err)
			}
			events = append(events, &event)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

// GetEvent returns the event, or nil when unknown.
func (s *Store) GetEvent(id string) (*models.Event, error) {
	var event *models.Event

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEvents))
		data := b.Get([]byte(id))
		if data == nil {
			return nil
		}
		event = &models.Event{}
		if err := json.Unmarshal(data, event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// PutEvent writes an event record.
func (s *Store) PutEvent(event *models.Event) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEvents))
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		return b.Put([]byte(event.ID), data)
	})
}

// DeleteEvent removes an event record.
func (s *Store) DeleteEvent(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEvents))
		return b.Delete([]byte(id))
	})
}
