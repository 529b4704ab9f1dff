package models

import "github.com/shopspring/decimal"

// Register is a named cash box with a balance and an optional count of
// the bills and coins it holds.
type Register struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	Denominations []Denomination  `json:"denominations,omitempty"`
}

// Clone returns an owned copy of the register.
func (r Register) Clone() Register {
	out := r
	out.Denominations = CloneDenominations(r.Denominations)
	return out
}

// CloneRegisters returns an owned copy of a register list.
func CloneRegisters(in []Register) []Register {
	out := make([]Register, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

// DefaultRegisters returns the built-in register directory used when no
// custom directory has been configured.
func DefaultRegisters() []Register {
	names := []struct{ id, name string }{
		{"bar1", "Bar 1"},
		{"bar2", "Bar 2"},
		{"bar3", "Bar 3"},
		{"bar4", "Bar 4"},
		{"karten", "Karten"},
		{"bierstand", "Bierstand"},
		{"essenstand", "Essenstand"},
		{"alkoholfrei", "Alkoholfrei"},
		{"gardarobe", "Gardarobe"},
		{"kassier", "Kassier"},
	}
	out := make([]Register, 0, len(names))
	for _, n := range names {
		out = append(out, Register{ID: n.id, Name: n.name, Balance: decimal.Zero})
	}
	return out
}
