package ledger

import "errors"

var (
	// ErrRegisterNotFound is returned when a register id does not resolve
	// within the event's balance snapshot.
	ErrRegisterNotFound = errors.New("register not found")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// source register's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTransfer is returned when source and target register are
	// the same.
	ErrInvalidTransfer = errors.New("invalid transfer")

	// ErrTransactionNotFound is returned when no log entry matches the
	// given transaction id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrBalanceNotFound is returned when recompute is called for an
	// event that has no balance snapshot yet.
	ErrBalanceNotFound = errors.New("balance record not found")

	// ErrRegisterInUse is returned when a register with a nonzero balance
	// is about to be removed.
	ErrRegisterInUse = errors.New("register in use")

	// ErrEventNotFound is returned when an event id is unknown.
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidRegisterName is returned when a register name is empty
	// or already taken within the event.
	ErrInvalidRegisterName = errors.New("invalid register name")
)
