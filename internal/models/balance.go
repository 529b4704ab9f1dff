package models

import "github.com/shopspring/decimal"

// EventBalance is the per-event snapshot of register balances plus the
// bank balance. It is a derived cache over the transaction log: one
// record per event, with registers as a full owned copy of register
// state, not a reference into the register directory.
type EventBalance struct {
	EventID     string          `json:"event_id"`
	Registers   []Register      `json:"registers"`
	BankBalance decimal.Decimal `json:"bank_balance"`
}

// NewEventBalance creates a zeroed snapshot over the given register set.
func NewEventBalance(eventID string, registers []Register) *EventBalance {
	regs := CloneRegisters(registers)
	for i := range regs {
		regs[i].Balance = decimal.Zero
		regs[i].Denominations = nil
	}
	return &EventBalance{
		EventID:     eventID,
		Registers:   regs,
		BankBalance: decimal.Zero,
	}
}

// Clone returns an owned copy of the snapshot.
func (b *EventBalance) Clone() *EventBalance {
	return &EventBalance{
		EventID:     b.EventID,
		Registers:   CloneRegisters(b.Registers),
		BankBalance: b.BankBalance,
	}
}

// Total returns the sum of all register balances plus the bank balance.
func (b *EventBalance) Total() decimal.Decimal {
	sum := b.BankBalance
	for _, r := range b.Registers {
		sum = sum.Add(r.Balance)
	}
	return sum
}
