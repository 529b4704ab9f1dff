package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// ListTransactions returns the log entries for an event in insertion
// order. eventID == "" returns the whole log.
func (s *Store) ListTransactions(eventID string) ([]*models.Transaction, error) {
	var txns []*models.Transaction

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTransactions))
		return b.ForEach(func(_, v []byte) error {
			var txn models.Transaction
			if err := json.Unmarshal(v, &txn); err != nil {
				return fmt.Errorf("failed to unmarshal transaction: %w", err)
			}
			if eventID == "" || txn.EventID == eventID {
				txns = append(txns, &txn)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// AppendTransaction writes a new log entry under the next sequence key.
func (s *Store) AppendTransaction(txn *models.Transaction) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTransactions))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(txn)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction: %w", err)
		}
		return b.Put(itob(int64(seq)), data)
	})
}

// UpdateTransaction replaces the entry matching txn.ID in place, keeping
// its position in the log. Returns false when no entry matches.
func (s *Store) UpdateTransaction(txn *models.Transaction) (bool, error) {
	found := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTransactions))
		key, err := findTransactionKey(b, txn.ID)
		if err != nil || key == nil {
			return err
		}
		data, err := json.Marshal(txn)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction: %w", err)
		}
		found = true
		return b.Put(key, data)
	})
	return found, err
}

// DeleteTransaction removes the entry matching the id. Returns false
// when no entry matches.
func (s *Store) DeleteTransaction(id string) (bool, error) {
	found := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTransactions))
		key, err := findTransactionKey(b, id)
		if err != nil || key == nil {
			return err
		}
		found = true
		return b.Delete(key)
	})
	return found, err
}

// DeleteEventTransactions removes every entry of one event.
func (s *Store) DeleteEventTransactions(eventID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTransactions))

		var keys [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var txn models.Transaction
			if err := json.Unmarshal(v, &txn); err != nil {
				return fmt.Errorf("failed to unmarshal transaction: %w", err)
			}
			if txn.EventID == eventID {
				key := make([]byte, len(k))
				copy(key, k)
				keys = append(keys, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range keys {
			if err := b.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// findTransactionKey scans the bucket for the entry with the given id
// and returns an owned copy of its key, or nil.
func findTransactionKey(b *bolt.Bucket, id string) ([]byte, error) {
	var key []byte
	err := b.ForEach(func(k, v []byte) error {
		if key != nil {
			return nil
		}
		var txn models.Transaction
		if err := json.Unmarshal(v, &txn); err != nil {
			return fmt.Errorf("failed to unmarshal transaction: %w", err)
		}
		if txn.ID == id {
			key = make([]byte, len(k))
			copy(key, k)
		}
		return nil
	})
	return key, err
}
