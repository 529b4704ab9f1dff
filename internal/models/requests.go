package models

import "github.com/shopspring/decimal"

// DepositRequest is the payload for paying money into a register.
type DepositRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	RegisterID    string          `json:"register_id"`
	Comment       string          `json:"comment"`
	Denominations []Denomination  `json:"denominations,omitempty"`
}

// WithdrawRequest is the payload for taking money out of a register.
// Exactly one destination applies: ToBank, a target register, or none
// (cash removal).
type WithdrawRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	SourceRegisterID string          `json:"source_register_id"`
	TargetRegisterID string          `json:"target_register_id,omitempty"`
	ToBank           bool            `json:"to_bank"`
	Comment          string          `json:"comment"`
	Denominations    []Denomination  `json:"denominations,omitempty"`
}

// OperationResult is the outcome of every engine operation. Message is
// user-facing; Balances carries the updated snapshot on success.
type OperationResult struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Balances *EventBalance `json:"balances,omitempty"`
}
