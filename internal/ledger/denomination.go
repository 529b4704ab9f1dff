package ledger

import (
	"sort"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// MergeDenominations folds entries into a register's denomination ledger.
// sign is +1 when bills enter the register and -1 when they leave. Entries
// with a count <= 0 are ignored; a resulting count <= 0 removes the value
// from the ledger entirely. The result is sorted descending by face value
// so iteration order is deterministic.
func MergeDenominations(ledger, entries []models.Denomination, sign int) []models.Denomination {
	if len(entries) == 0 {
		return ledger
	}

	counts := make(map[string]models.Denomination, len(ledger)+len(entries))
	for _, d := range ledger {
		counts[d.Value.String()] = d
	}

	for _, e := range entries {
		if e.Count <= 0 {
			continue
		}
		key := e.Value.String()
		existing := counts[key].Count
		next := existing + sign*e.Count
		if next <= 0 {
			delete(counts, key)
			continue
		}
		counts[key] = models.Denomination{Value: e.Value, Count: next}
	}

	if len(counts) == 0 {
		return nil
	}

	out := make([]models.Denomination, 0, len(counts))
	for _, d := range counts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}
