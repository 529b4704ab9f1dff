package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Denomination is a bill or coin face value together with the count held.
// A register's denomination ledger is a slice of these with unique values;
// any entry present always has Count > 0.
type Denomination struct {
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count"`
}

// Label formats a denomination value the way the register sheets label
// their columns: "5€" for whole-euro values, "50¢" for cent values.
func (d Denomination) Label() string {
	return DenominationLabel(d.Value)
}

// DenominationLabel formats a face value as a column label.
func DenominationLabel(value decimal.Decimal) string {
	one := decimal.NewFromInt(1)
	if value.GreaterThanOrEqual(one) {
		return fmt.Sprintf("%s€", value.Truncate(0))
	}
	return fmt.Sprintf("%d¢", value.Mul(decimal.NewFromInt(100)).IntPart())
}

// DefaultDenominations returns every euro bill and coin face value,
// descending. This is the set offered for counting register contents.
func DefaultDenominations() []decimal.Decimal {
	values := []string{
		"500", "200", "100", "50", "20", "10", "5", "2", "1",
		"0.5", "0.2", "0.1", "0.05", "0.02", "0.01",
	}
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.RequireFromString(v))
	}
	return out
}

// CloneDenominations returns an owned copy of a denomination ledger.
func CloneDenominations(in []Denomination) []Denomination {
	if in == nil {
		return nil
	}
	out := make([]Denomination, len(in))
	copy(out, in)
	return out
}

// SumDenominations returns the monetary value of a denomination ledger.
func SumDenominations(in []Denomination) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range in {
		sum = sum.Add(d.Value.Mul(decimal.NewFromInt(int64(d.Count))))
	}
	return sum
}
