package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vereinskasse/kassenbuch/internal/models"
	"github.com/vereinskasse/kassenbuch/internal/store"
)

const testEvent = "sommerfest-2026"

func newTestEngine(t *testing.T) (*Engine, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	if err := mem.SaveRegisters([]models.Register{
		{ID: "bar1", Name: "Bar 1", Balance: decimal.Zero},
		{ID: "bar2", Name: "Bar 2", Balance: decimal.Zero},
		{ID: "karten", Name: "Karten", Balance: decimal.Zero},
	}); err != nil {
		t.Fatalf("failed to seed registers: %v", err)
	}
	return New(mem), mem
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustDeposit(t *testing.T, e *Engine, registerID, value string) {
	t.Helper()

	result, err := e.Deposit(testEvent, models.DepositRequest{
		Amount:     amount(value),
		RegisterID: registerID,
	})
	if err != nil || !result.Success {
		t.Fatalf("deposit of %s into %s failed: %v (%+v)", value, registerID, err, result)
	}
}

func registerBalance(t *testing.T, b *models.EventBalance, id string) decimal.Decimal {
	t.Helper()

	for _, r := range b.Registers {
		if r.ID == id {
			return r.Balance
		}
	}
	t.Fatalf("register %s not in snapshot", id)
	return decimal.Zero
}

func assertAmount(t *testing.T, got decimal.Decimal, expected string) {
	t.Helper()

	if !got.Equal(amount(expected)) {
		t.Errorf("got %s, expected %s", got.StringFixed(2), expected)
	}
}

func TestDepositIncreasesBalance(t *testing.T) {
	e, mem := newTestEngine(t)

	result, err := e.Deposit(testEvent, models.DepositRequest{
		Amount:     amount("100"),
		RegisterID: "bar1",
		Comment:    "Startgeld",
	})
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("deposit not successful: %s", result.Message)
	}
	if result.Message != "100.00€ wurden eingezahlt." {
		t.Errorf("unexpected message: %q", result.Message)
	}
	assertAmount(t, registerBalance(t, result.Balances, "bar1"), "100")
	assertAmount(t, result.Balances.BankBalance, "0")

	txns, err := mem.ListTransactions(testEvent)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, expected 1", len(txns))
	}
	txn := txns[0]
	if txn.Type != models.TypeDeposit || txn.Target != "Bar 1" || txn.TargetID != "bar1" {
		t.Errorf("unexpected transaction: %+v", txn)
	}
	if txn.Comment != "Startgeld" {
		t.Errorf("unexpected comment: %q", txn.Comment)
	}
}

func TestDepositUnknownRegister(t *testing.T) {
	e, mem := newTestEngine(t)

	result, err := e.Deposit(testEvent, models.DepositRequest{
		Amount:     amount("10"),
		RegisterID: "tombola",
	})
	if !errors.Is(err, ErrRegisterNotFound) {
		t.Fatalf("expected ErrRegisterNotFound, got %v", err)
	}
	if result.Success || result.Message != "Kasse nicht gefunden." {
		t.Errorf("unexpected result: %+v", result)
	}

	txns, _ := mem.ListTransactions(testEvent)
	if len(txns) != 0 {
		t.Errorf("log must stay empty on failure, got %d entries", len(txns))
	}
}

func TestDepositDefaultComment(t *testing.T) {
	e, mem := newTestEngine(t)
	mustDeposit(t, e, "bar1", "20")

	txns, _ := mem.ListTransactions(testEvent)
	if txns[0].Comment != "Einzahlung" {
		t.Errorf("unexpected default comment: %q", txns[0].Comment)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	e, mem := newTestEngine(t)
	mustDeposit(t, e, "bar1", "50")

	result, err := e.Withdraw(testEvent, models.WithdrawRequest{
		Amount:           amount("50.01"),
		SourceRegisterID: "bar1",
		ToBank:           true,
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if result.Success || result.Message != "Nicht genügend Geld in der Kasse." {
		t.Errorf("unexpected result: %+v", result)
	}

	// Log and balances must be untouched.
	txns, _ := mem.ListTransactions(testEvent)
	if len(txns) != 1 {
		t.Errorf("got %d transactions, expected only the deposit", len(txns))
	}
	balance, _ := mem.GetBalance(testEvent)
	assertAmount(t, registerBalance(t, balance, "bar1"), "50")
	assertAmount(t, balance.BankBalance, "0")
}

func TestWithdrawSameRegisterFails(t *testing.T) {
	e, _ := newTestEngine(t)
	mustDeposit(t, e, "bar1", "50")

	result, err := e.Withdraw(testEvent, models.WithdrawRequest{
		Amount:           amount("10"),
		SourceRegisterID: "bar1",
		TargetRegisterID: "bar1",
	})
	if !errors.Is(err, ErrInvalidTransfer) {
		t.Fatalf("expected ErrInvalidTransfer, got %v", err)
	}
	if result.Success {
		t.Errorf("transfer onto itself must fail")
	}
}

func TestTransferSymmetry(t *testing.T) {
	e, mem := newTestEngine(t)
	mustDeposit(t, e, "bar1", "100")

	result, err := e.Withdraw(testEvent, models.WithdrawRequest{
		Amount:           amount("20"),
		SourceRegisterID: "bar1",
		TargetRegisterID: "bar2",
	})
	if err != nil || !result.Success {
		t.Fatalf("transfer failed: %v (%+v)", err, result)
	}

	assertAmount(t, registerBalance(t, result.Balances, "bar1"), "80")
	assertAmount(t, registerBalance(t, result.Balances, "bar2"), "20")
	assertAmount(t, result.Balances.BankBalance, "0")

	txns, _ := mem.ListTransactions(testEvent)
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, expected 2", len(txns))
	}
	transfer := txns[1]
	if transfer.Source != "Bar 1" || transfer.Target != "Bar 2" {
		t.Errorf("unexpected transfer legs: source=%q target=%q", transfer.Source, transfer.Target)
	}
	if transfer.SourceID != "bar1" || transfer.TargetID != "bar2" {
		t.Errorf("unexpected transfer ids: source=%q target=%q", transfer.SourceID, transfer.TargetID)
	}
}

func TestWithdrawToBank(t *testing.T) {
	e, _ := newTestEngine(t)
	mustDeposit(t, e, "bar1", "100")

	result, err := e.Withdraw(testEvent, models.WithdrawRequest{
		Amount:           amount("60"),
		SourceRegisterID: "bar1",
		ToBank:           true,
	})
	if err != nil || !result.Success {
		t.Fatalf("bank withdrawal failed: %v (%+v)", err, result)
	}
	if result.Message != "60.00€ wurden von Bar 1 zur Bank überwiesen." {
		t.Errorf("unexpected message: %q", result.Message)
	}
	assertAmount(t, registerBalance(t, result.Balances, "bar1"), "40")
	assertAmount(t, result.Balances.BankBalance, "60")
}

func TestWithdrawCashRemoval(t *testing.T) {
	e, mem := newTestEngine(t)
	mustDeposit(t, e, "bar1", "100")

	result, err := e.Withdraw(testEvent, models.WithdrawRequest{
		Amount:           amount("30"),
		SourceRegisterID: "bar1",
	})
	if err != nil || !result.Success {
		t.Fatalf("cash removal failed: %v (%+v)", err, result)
	}
	assertAmount(t, registerBalance(t, result.Balances, "bar1"), "70")
	assertAmount(t, result.Balances.BankBalance, "0")

	txns, _ := mem.ListTransactions(testEvent)
	if txns[1].Target != models.TargetCashRemoval {
		t.Errorf("expected target %q, got %q", models.TargetCashRemoval, txns[1].Target)
	}
}

func TestDenominationConservation(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.Deposit(testEvent, models.DepositRequest{
		Amount:        amount("13"),
		RegisterID:    "bar1",
		Denominations: []models.Denomination{euro(5, 2), euro(1, 3)},
	})
	if err != nil || !result.Success {
		t.Fatalf("deposit failed: %v", err)
	}

	bar1 := result.Balances.Registers[0]
	assertDenominations(t, bar1.Denominations, []models.Denomination{euro(5, 2), euro(1, 3)})

	result, err = e.Withdraw(testEvent, models.WithdrawRequest{
		Amount:           amount("3"),
		SourceRegisterID: "bar1",
		Denominations:    []models.Denomination{euro(1, 3)},
	})
	if err != nil || !result.Success {
		t.Fatalf("withdrawal failed: %v", err)
	}

	bar1 = result.Balances.Registers[0]
	assertAmount(t, bar1.Balance, "10")
	assertDenominations(t, bar1.Denominations, []models.Denomination{euro(5, 2)})
}

func TestTransferMovesDenominations(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Deposit(testEvent, models.DepositRequest{
		Amount:        amount("40"),
		RegisterID:    "bar1",
		Denominations: []models.Denomination{euro(20, 2)},
	})
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	result, err := e.Withdraw(testEvent, models.WithdrawRequest{
		Amount:           amount("20"),
		SourceRegisterID: "bar1",
		TargetRegisterID: "bar2",
		Denominations:    []models.Denomination{euro(20, 1)},
	})
	if err != nil || !result.Success {
		t.Fatalf("transfer failed: %v", err)
	}

	assertDenominations(t, result.Balances.Registers[0].Denominations, []models.Denomination{euro(20, 1)})
	assertDenominations(t, result.Balances.Registers[1].Denominations, []models.Denomination{euro(20, 1)})
}

func TestConservation(t *testing.T) {
	e, _ := newTestEngine(t)

	mustDeposit(t, e, "bar1", "100")
	mustDeposit(t, e, "bar2", "55.50")
	mustDeposit(t, e, "karten", "12.25")

	transfers := []models.WithdrawRequest{
		{Amount: amount("40"), SourceRegisterID: "bar1", TargetRegisterID: "bar2"},
		{Amount: amount("25.50"), SourceRegisterID: "bar2", ToBank: true},
		{Amount: amount("10"), SourceRegisterID: "karten"}, // Bar Entnahme
	}
	for _, req := range transfers {
		if result, err := e.Withdraw(testEvent, req); err != nil || !result.Success {
			t.Fatalf("withdrawal failed: %v (%+v)", err, result)
		}
	}

	result, err := e.Recompute(testEvent)
	if err != nil || !result.Success {
		t.Fatalf("recompute failed: %v", err)
	}

	// deposits 167.75, minus 10 removed as cash. Transfers and bank
	// moves conserve money.
	assertAmount(t, result.Balances.Total(), "157.75")
}

func TestRecomputeIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	mustDeposit(t, e, "bar1", "100")
	if result, err := e.Withdraw(testEvent, models.WithdrawRequest{
		Amount: amount("40"), SourceRegisterID: "bar1", TargetRegisterID: "bar2",
	}); err != nil || !result.Success {
		t.Fatalf("withdrawal failed: %v", err)
	}

	first, err := e.Recompute(testEvent)
	if err != nil || !first.Success {
		t.Fatalf("first recompute failed: %v", err)
	}
	second, err := e.Recompute(testEvent)
	if err != nil || !second.Success {
		t.Fatalf("second recompute failed: %v", err)
	}

	for i := range first.Balances.Registers {
		a, b := first.Balances.Registers[i], second.Balances.Registers[i]
		if a.ID != b.ID || !a.Balance.Equal(b.Balance) {
			t.Errorf("register %s diverged: %s vs %s", a.ID, a.Balance, b.Balance)
		}
		assertDenominations(t, b.Denominations, a.Denominations)
	}
	if !first.Balances.BankBalance.Equal(second.Balances.BankBalance) {
		t.Errorf("bank balance diverged: %s vs %s",
			first.Balances.BankBalance, second.Balances.BankBalance)
	}
}

func TestRecomputeWithoutSnapshot(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.Recompute("untouched-event")
	if !errors.Is(err, ErrBalanceNotFound) {
		t.Fatalf("expected ErrBalanceNotFound, got %v", err)
	}
	if result.Success || result.Message != "Aktuelle Saldendaten nicht gefunden." {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestEditRecomputeEquivalence(t *testing.T) {
	// Editing an amount from 10 to 15 must land on the same snapshot as
	// a log where the transaction carried 15 from the start.
	edited, _ := newTestEngine(t)
	mustDeposit(t, edited, "bar1", "50")
	mustDeposit(t, edited, "bar1", "10")

	txns, _ := edited.Transactions(testEvent)
	original := txns[1]
	updated := original.Clone()
	updated.Amount = amount("15")

	result, err := edited.EditTransaction(original, updated)
	if err != nil || !result.Success {
		t.Fatalf("edit failed: %v (%+v)", err, result)
	}
	if result.Message != "Transaktion erfolgreich aktualisiert." {
		t.Errorf("unexpected message: %q", result.Message)
	}

	reference, _ := newTestEngine(t)
	mustDeposit(t, reference, "bar1", "50")
	mustDeposit(t, reference, "bar1", "15")
	want, err := reference.Recompute(testEvent)
	if err != nil {
		t.Fatalf("reference recompute failed: %v", err)
	}

	assertAmount(t, registerBalance(t, result.Balances, "bar1"),
		registerBalance(t, want.Balances, "bar1").String())
}

func TestEditPreservesIdentityFields(t *testing.T) {
	e, mem := newTestEngine(t)
	mustDeposit(t, e, "bar1", "10")

	txns, _ := e.Transactions(testEvent)
	original := txns[0]

	tampered := original.Clone()
	tampered.Amount = amount("12")
	tampered.Target = "Bar 2"
	tampered.TargetID = "bar2"
	tampered.Type = models.TypeWithdrawal

	if _, err := e.EditTransaction(original, tampered); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	stored, _ := mem.ListTransactions(testEvent)
	got := stored[0]
	if got.Target != "Bar 1" || got.TargetID != "bar1" || got.Type != models.TypeDeposit {
		t.Errorf("identity fields must not change: %+v", got)
	}
	assertAmount(t, got.Amount, "12")
}

func TestEditUnknownTransaction(t *testing.T) {
	e, _ := newTestEngine(t)
	mustDeposit(t, e, "bar1", "10")

	ghost := &models.Transaction{ID: "missing", EventID: testEvent, Amount: amount("1")}
	result, err := e.EditTransaction(ghost, ghost)
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
	if result.Success {
		t.Errorf("edit of unknown transaction must fail")
	}
}

func TestDeleteUnknownTransaction(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.DeleteTransaction(testEvent, "missing")
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
	if result.Success {
		t.Errorf("delete of unknown transaction must fail")
	}
}

// TestDeleteUpstreamDeposit runs the documented scenario: removing a
// deposit that later withdrawals relied on drives the register
// negative. The log is the source of truth, so the snapshot reflects
// the now-unbalanced history.
func TestDeleteUpstreamDeposit(t *testing.T) {
	e, _ := newTestEngine(t)

	mustDeposit(t, e, "bar1", "100")
	if result, err := e.Withdraw(testEvent, models.WithdrawRequest{
		Amount: amount("40"), SourceRegisterID: "bar1", TargetRegisterID: "bar2",
	}); err != nil || !result.Success {
		t.Fatalf("transfer failed: %v", err)
	}
	if result, err := e.Withdraw(testEvent, models.WithdrawRequest{
		Amount: amount("60"), SourceRegisterID: "bar1", ToBank: true,
	}); err != nil || !result.Success {
		t.Fatalf("bank withdrawal failed: %v", err)
	}

	balance, _ := e.Balance(testEvent)
	assertAmount(t, registerBalance(t, balance, "bar1"), "0")
	assertAmount(t, registerBalance(t, balance, "bar2"), "40")
	assertAmount(t, balance.BankBalance, "60")

	txns, _ := e.Transactions(testEvent)
	result, err := e.DeleteTransaction(testEvent, txns[0].ID)
	if err != nil || !result.Success {
		t.Fatalf("delete failed: %v (%+v)", err, result)
	}

	assertAmount(t, registerBalance(t, result.Balances, "bar1"), "-40")
	assertAmount(t, registerBalance(t, result.Balances, "bar2"), "40")
	assertAmount(t, result.Balances.BankBalance, "60")
}

func TestRenameRegisterKeepsHistory(t *testing.T) {
	e, _ := newTestEngine(t)
	mustDeposit(t, e, "bar1", "100")

	if result, err := e.RenameRegister(testEvent, "bar1", "Haupttheke"); err != nil || !result.Success {
		t.Fatalf("rename failed: %v (%+v)", err, result)
	}

	// The historical transaction still references "Bar 1" by name, but
	// its captured register id keeps it attached.
	result, err := e.Recompute(testEvent)
	if err != nil || !result.Success {
		t.Fatalf("recompute failed: %v", err)
	}
	assertAmount(t, registerBalance(t, result.Balances, "bar1"), "100")
}

func TestImportResolvesByName(t *testing.T) {
	e, _ := newTestEngine(t)

	imported := []*models.Transaction{
		{ID: "imp-1", Type: models.TypeDeposit, Amount: amount("200"), Target: "Bar 1"},
		{ID: "imp-2", Type: models.TypeWithdrawal, Amount: amount("50"), Source: "Bar 1", Target: "Bank"},
	}

	result, err := e.Import(testEvent, imported)
	if err != nil || !result.Success {
		t.Fatalf("import failed: %v (%+v)", err, result)
	}
	if result.Message != "2 Transaktionen wurden importiert." {
		t.Errorf("unexpected message: %q", result.Message)
	}
	assertAmount(t, registerBalance(t, result.Balances, "bar1"), "150")
	assertAmount(t, result.Balances.BankBalance, "50")

	txns, _ := e.Transactions(testEvent)
	for _, txn := range txns {
		if txn.EventID != testEvent {
			t.Errorf("imported transaction %s not tagged with event", txn.ID)
		}
	}
}

func TestImportUnknownRegisterIsDropped(t *testing.T) {
	e, _ := newTestEngine(t)
	mustDeposit(t, e, "bar1", "10")

	result, err := e.Import(testEvent, []*models.Transaction{
		{ID: "imp-1", Type: models.TypeDeposit, Amount: amount("500"), Target: "Weinstand"},
	})
	if err != nil || !result.Success {
		t.Fatalf("import failed: %v", err)
	}

	// The unresolvable deposit stays in the log but has no effect on
	// any balance.
	assertAmount(t, result.Balances.Total(), "10")
	txns, _ := e.Transactions(testEvent)
	if len(txns) != 2 {
		t.Errorf("got %d transactions, expected 2", len(txns))
	}
}

func TestResetEventPreservesRegisters(t *testing.T) {
	e, _ := newTestEngine(t)
	mustDeposit(t, e, "bar1", "100")

	result, err := e.ResetEvent(testEvent)
	if err != nil || !result.Success {
		t.Fatalf("reset failed: %v", err)
	}

	if len(result.Balances.Registers) != 3 {
		t.Fatalf("register identities must survive a reset, got %d", len(result.Balances.Registers))
	}
	for _, r := range result.Balances.Registers {
		if !r.Balance.IsZero() || r.Denominations != nil {
			t.Errorf("register %s not zeroed: %+v", r.ID, r)
		}
	}

	txns, _ := e.Transactions(testEvent)
	if len(txns) != 0 {
		t.Errorf("log must be empty after reset, got %d entries", len(txns))
	}
}

func TestLazySnapshotCreation(t *testing.T) {
	e, mem := newTestEngine(t)

	if balance, _ := mem.GetBalance(testEvent); balance != nil {
		t.Fatalf("snapshot must not exist before first touch")
	}

	balance, err := e.Balance(testEvent)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if len(balance.Registers) != 3 {
		t.Errorf("snapshot must copy the register directory, got %d registers", len(balance.Registers))
	}
	if !balance.BankBalance.IsZero() {
		t.Errorf("fresh snapshot must be zeroed")
	}

	if stored, _ := mem.GetBalance(testEvent); stored == nil {
		t.Errorf("snapshot must be persisted on first touch")
	}
}
