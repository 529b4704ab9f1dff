package ledger

import "github.com/vereinskasse/kassenbuch/internal/models"

// findRegisterByID returns a pointer into regs, or nil.
func findRegisterByID(regs []models.Register, id string) *models.Register {
	if id == "" {
		return nil
	}
	for i := range regs {
		if regs[i].ID == id {
			return &regs[i]
		}
	}
	return nil
}

// findRegisterByName returns a pointer into regs, or nil.
func findRegisterByName(regs []models.Register, name string) *models.Register {
	if name == "" {
		return nil
	}
	for i := range regs {
		if regs[i].Name == name {
			return &regs[i]
		}
	}
	return nil
}

// resolveRegister resolves a transaction's register reference. The id
// captured at creation time wins; the name label is the fallback for
// imported or legacy records that never carried an id. Renaming a
// register therefore does not orphan its history.
func resolveRegister(regs []models.Register, id, name string) *models.Register {
	if r := findRegisterByID(regs, id); r != nil {
		return r
	}
	return findRegisterByName(regs, name)
}

// applyTransaction folds one transaction into a balance snapshot. It is
// the single authority on how a log entry moves money: the incremental
// deposit/withdraw path folds the new entry over the current snapshot,
// and Recompute folds the whole log over a zeroed one, so the two paths
// cannot diverge.
//
// A reference that resolves to no register drops that side of the
// transaction silently; the log keeps the entry and a later recompute
// picks it up again once the register reappears.
func applyTransaction(balance *models.EventBalance, txn *models.Transaction) {
	if txn.Type == models.TypeDeposit {
		if reg := resolveRegister(balance.Registers, txn.TargetID, txn.Target); reg != nil {
			reg.Balance = reg.Balance.Add(txn.Amount)
			reg.Denominations = MergeDenominations(reg.Denominations, txn.Denominations, +1)
		}
		return
	}

	// Withdrawal: money leaves the source register first.
	if reg := resolveRegister(balance.Registers, txn.SourceID, txn.Source); reg != nil {
		reg.Balance = reg.Balance.Sub(txn.Amount)
		reg.Denominations = MergeDenominations(reg.Denominations, txn.Denominations, -1)
	}

	switch txn.Target {
	case models.TargetBank:
		balance.BankBalance = balance.BankBalance.Add(txn.Amount)
	case models.TargetCashRemoval:
		// Cash leaves the system entirely.
	default:
		if reg := resolveRegister(balance.Registers, txn.TargetID, txn.Target); reg != nil {
			reg.Balance = reg.Balance.Add(txn.Amount)
			reg.Denominations = MergeDenominations(reg.Denominations, txn.Denominations, +1)
		}
	}
}
