// Package store persists the ledger in a local bbolt key-value database.
// Transactions are keyed by an insertion-order sequence number so the
// log reads back in the order it was written; balances, events and the
// register directory are keyed by their ids.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// Bucket names.
const (
	bucketEvents       = "events"
	bucketTransactions = "transactions"
	bucketBalances     = "balances"
	bucketRegisters    = "registers"
)

// Store is the bbolt database wrapper. It implements ledger.Store.
type Store struct {
	db *bolt.DB
}

// New opens the database at dbPath and initializes the buckets.
func New(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := []string{bucketEvents, bucketTransactions, bucketBalances, bucketRegisters}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// itob converts an int64 to a big-endian byte slice, so sequence keys
// sort in insertion order.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
