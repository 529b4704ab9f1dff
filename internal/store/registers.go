package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// keyDirectory holds the customized register directory.
const keyDirectory = "directory"

// ListRegisters returns the customized register directory, or the
// built-in defaults when none has been saved.
func (s *Store) ListRegisters() ([]models.Register, error) {
	var registers []models.Register

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRegisters))
		data := b.Get([]byte(keyDirectory))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &registers); err != nil {
			return fmt.Errorf("failed to unmarshal register directory: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if registers == nil {
		registers = models.DefaultRegisters()
	}
	return registers, nil
}

// SaveRegisters writes the customized register directory.
func (s *Store) SaveRegisters(registers []models.Register) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRegisters))
		data, err := json.Marshal(registers)
		if err != nil {
			return fmt.Errorf("failed to marshal register directory: %w", err)
		}
		return b.Put([]byte(keyDirectory), data)
	})
}
