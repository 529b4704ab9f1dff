package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money entering a register from money
// leaving one.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
)

// Sentinel targets for withdrawals that do not land in another register.
const (
	// TargetBank marks a withdrawal moved to the event's bank account.
	TargetBank = "Bank"
	// TargetCashRemoval marks cash physically taken out of the system.
	TargetCashRemoval = "Bar Entnahme"
)

// Transaction is one immutable entry of the append-only log. The log is
// the sole source of truth; balance snapshots are derived from it.
//
// SourceID/TargetID hold the register id captured at creation time and
// are the primary join key during recomputation. Source/Target keep the
// register name as a display label and as a fallback key for imported
// records that never carried an id.
type Transaction struct {
	ID            string          `json:"id"`
	EventID       string          `json:"event_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Source        string          `json:"source,omitempty"`
	SourceID      string          `json:"source_id,omitempty"`
	Target        string          `json:"target"`
	TargetID      string          `json:"target_id,omitempty"`
	Comment       string          `json:"comment"`
	CreatedAt     time.Time       `json:"created_at"`
	Denominations []Denomination  `json:"denominations,omitempty"`
}

// NewTransaction builds a log entry with a fresh id and a default comment
// when none was given.
func NewTransaction(eventID string, amount decimal.Decimal, txType TransactionType, source, sourceID, target, targetID, comment string, denominations []Denomination) *Transaction {
	if comment == "" {
		if txType == TypeDeposit {
			comment = "Einzahlung"
		} else {
			comment = fmt.Sprintf("Abhebung (%s)", target)
		}
	}
	return &Transaction{
		ID:            uuid.NewString(),
		EventID:       eventID,
		Type:          txType,
		Amount:        amount,
		Source:        source,
		SourceID:      sourceID,
		Target:        target,
		TargetID:      targetID,
		Comment:       comment,
		CreatedAt:     time.Now().UTC(),
		Denominations: CloneDenominations(denominations),
	}
}

// Clone returns an owned copy of the transaction.
func (t *Transaction) Clone() *Transaction {
	out := *t
	out.Denominations = CloneDenominations(t.Denominations)
	return &out
}
