package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// Register directory operations. They act on one event's balance
// snapshot (the register set in use) and persist the resulting set as
// the custom directory, so future events start from the same layout.
// Historical transactions are untouched: they carry the register id
// captured at creation time.

// Registers returns the register set in use for the event.
func (e *Engine) Registers(eventID string) ([]models.Register, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()

	balance, err := e.snapshot(eventID)
	if err != nil {
		return nil, err
	}
	return models.CloneRegisters(balance.Registers), nil
}

// AddRegister adds a register with a zero balance. Names are unique per
// event, compared case-insensitively.
func (e *Engine) AddRegister(eventID, name string) (*models.OperationResult, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return fail("Bitte geben Sie einen Namen für die Kasse ein."), ErrInvalidRegisterName
	}

	balance, err := e.snapshot(eventID)
	if err != nil {
		return nil, err
	}
	if registerNameTaken(balance.Registers, name, "") {
		return fail("Eine Kasse mit diesem Namen existiert bereits."), ErrInvalidRegisterName
	}

	balance.Registers = append(balance.Registers, models.Register{
		ID:      uuid.NewString(),
		Name:    name,
		Balance: decimal.Zero,
	})
	if err := e.saveDirectory(balance); err != nil {
		return nil, err
	}
	return ok(fmt.Sprintf("Die Kasse %q wurde hinzugefügt.", name), balance), nil
}

// RenameRegister changes a register's display name. Transactions keep
// resolving through the stable id, so history stays attached.
func (e *Engine) RenameRegister(eventID, registerID, name string) (*models.OperationResult, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return fail("Bitte geben Sie einen Namen für die Kasse ein."), ErrInvalidRegisterName
	}

	balance, err := e.snapshot(eventID)
	if err != nil {
		return nil, err
	}
	register := findRegisterByID(balance.Registers, registerID)
	if register == nil {
		return fail("Kasse nicht gefunden."), ErrRegisterNotFound
	}
	if registerNameTaken(balance.Registers, name, registerID) {
		return fail("Eine Kasse mit diesem Namen existiert bereits."), ErrInvalidRegisterName
	}

	register.Name = name
	if err := e.saveDirectory(balance); err != nil {
		return nil, err
	}
	return ok(fmt.Sprintf("Die Kasse wurde erfolgreich umbenannt in %q.", name), balance), nil
}

// RemoveRegister deletes a register from the event's set. A register
// still holding money cannot be removed.
func (e *Engine) RemoveRegister(eventID, registerID string) (*models.OperationResult, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()

	balance, err := e.snapshot(eventID)
	if err != nil {
		return nil, err
	}
	register := findRegisterByID(balance.Registers, registerID)
	if register == nil {
		return fail("Kasse nicht gefunden."), ErrRegisterNotFound
	}
	if !register.Balance.IsZero() {
		return fail(fmt.Sprintf("Die Kasse %q hat noch einen Saldo von %s€ und kann nicht gelöscht werden.",
			register.Name, register.Balance.StringFixed(2))), ErrRegisterInUse
	}

	name := register.Name
	kept := make([]models.Register, 0, len(balance.Registers)-1)
	for _, r := range balance.Registers {
		if r.ID != registerID {
			kept = append(kept, r)
		}
	}
	balance.Registers = kept

	if err := e.saveDirectory(balance); err != nil {
		return nil, err
	}
	return ok(fmt.Sprintf("Die Kasse %q wurde gelöscht.", name), balance), nil
}

// saveDirectory persists the snapshot and mirrors its register set into
// the custom directory for future events.
func (e *Engine) saveDirectory(balance *models.EventBalance) error {
	if err := e.store.PutBalance(balance); err != nil {
		return fmt.Errorf("save balance: %w", err)
	}
	directory := models.CloneRegisters(balance.Registers)
	for i := range directory {
		directory[i].Balance = decimal.Zero
		directory[i].Denominations = nil
	}
	if err := e.store.SaveRegisters(directory); err != nil {
		return fmt.Errorf("save register directory: %w", err)
	}
	return nil
}

func registerNameTaken(regs []models.Register, name, excludeID string) bool {
	for _, r := range regs {
		if r.ID != excludeID && strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}
