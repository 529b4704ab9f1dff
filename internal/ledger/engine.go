// Package ledger implements the balance-reconciliation core: an
// append-only transaction log per event, a derived balance snapshot per
// event, and the engine that keeps the two consistent across deposits,
// withdrawals, edits, deletes and bulk imports.
package ledger

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vereinskasse/kassenbuch/internal/models"
)

// Engine executes ledger operations against an injected store. Mutating
// operations are serialized per event so the load-modify-save cycle of
// the derived balance snapshot cannot interleave.
type Engine struct {
	store Store

	mu     sync.Mutex
	events map[string]*sync.Mutex
}

// New creates an engine over the given store.
func New(store Store) *Engine {
	return &Engine{
		store:  store,
		events: make(map[string]*sync.Mutex),
	}
}

// lockEvent acquires the per-event mutex and returns its unlock func.
func (e *Engine) lockEvent(eventID string) func() {
	e.mu.Lock()
	m, ok := e.events[eventID]
	if !ok {
		m = &sync.Mutex{}
		e.events[eventID] = m
	}
	e.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func fail(message string) *models.OperationResult {
	return &models.OperationResult{Success: false, Message: message}
}

func ok(message string, balance *models.EventBalance) *models.OperationResult {
	return &models.OperationResult{Success: true, Message: message, Balances: balance}
}

// snapshot returns the event's balance snapshot, lazily creating a
// zeroed one over the current register directory on first touch.
func (e *Engine) snapshot(eventID string) (*models.EventBalance, error) {
	balance, err := e.store.GetBalance(eventID)
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	if balance != nil {
		return balance, nil
	}

	registers, err := e.store.ListRegisters()
	if err != nil {
		return nil, fmt.Errorf("load register directory: %w", err)
	}
	balance = models.NewEventBalance(eventID, registers)
	if err := e.store.PutBalance(balance); err != nil {
		return nil, fmt.Errorf("save balance: %w", err)
	}
	return balance, nil
}

// Balance returns the event's current snapshot, creating it if needed.
func (e *Engine) Balance(eventID string) (*models.EventBalance, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()
	return e.snapshot(eventID)
}

// Transactions returns the event's log entries in insertion order.
func (e *Engine) Transactions(eventID string) ([]*models.Transaction, error) {
	return e.store.ListTransactions(eventID)
}

// Deposit pays money into a register: one log entry is appended and the
// target register's balance and denomination ledger grow by the given
// amount. Amount > 0 is the caller's responsibility; register existence
// is re-validated here.
func (e *Engine) Deposit(eventID string, req models.DepositRequest) (*models.OperationResult, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()

	balance, err := e.snapshot(eventID)
	if err != nil {
		return nil, err
	}

	register := findRegisterByID(balance.Registers, req.RegisterID)
	if register == nil {
		return fail("Kasse nicht gefunden."), ErrRegisterNotFound
	}

	txn := models.NewTransaction(eventID, req.Amount, models.TypeDeposit,
		"", "", register.Name, register.ID, req.Comment, req.Denominations)
	if err := e.store.AppendTransaction(txn); err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	applyTransaction(balance, txn)
	if err := e.store.PutBalance(balance); err != nil {
		return nil, fmt.Errorf("save balance: %w", err)
	}

	return ok(fmt.Sprintf("%s€ wurden eingezahlt.", req.Amount.StringFixed(2)), balance), nil
}

// Withdraw takes money out of a source register and moves it to the
// bank, to another register, or out of the system (Bar Entnahme). The
// withdrawal must be covered by the source register's balance.
func (e *Engine) Withdraw(eventID string, req models.WithdrawRequest) (*models.OperationResult, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()

	balance, err := e.snapshot(eventID)
	if err != nil {
		return nil, err
	}

	source := findRegisterByID(balance.Registers, req.SourceRegisterID)
	if source == nil {
		return fail("Kasse nicht gefunden."), ErrRegisterNotFound
	}
	if req.Amount.GreaterThan(source.Balance) {
		return fail("Nicht genügend Geld in der Kasse."), ErrInsufficientFunds
	}

	target := models.TargetCashRemoval
	targetID := ""
	if req.ToBank {
		target = models.TargetBank
	} else if req.TargetRegisterID != "" {
		if req.TargetRegisterID == req.SourceRegisterID {
			return fail("Quell- und Zielkasse müssen unterschiedlich sein."), ErrInvalidTransfer
		}
		targetRegister := findRegisterByID(balance.Registers, req.TargetRegisterID)
		if targetRegister == nil {
			return fail("Zielkasse nicht gefunden."), ErrRegisterNotFound
		}
		target = targetRegister.Name
		targetID = targetRegister.ID
	}

	txn := models.NewTransaction(eventID, req.Amount, models.TypeWithdrawal,
		source.Name, source.ID, target, targetID, req.Comment, req.Denominations)
	if err := e.store.AppendTransaction(txn); err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	sourceName := source.Name
	applyTransaction(balance, txn)
	if err := e.store.PutBalance(balance); err != nil {
		return nil, fmt.Errorf("save balance: %w", err)
	}

	var message string
	switch {
	case req.ToBank:
		message = fmt.Sprintf("%s€ wurden von %s zur Bank überwiesen.", req.Amount.StringFixed(2), sourceName)
	case targetID != "":
		message = fmt.Sprintf("%s€ wurden von %s zu %s transferiert.", req.Amount.StringFixed(2), sourceName, target)
	default:
		message = fmt.Sprintf("%s€ wurden von %s entnommen.", req.Amount.StringFixed(2), sourceName)
	}
	return ok(message, balance), nil
}

// EditTransaction replaces a log entry and re-derives the event's
// snapshot from the full log. Only amount, comment and denominations may
// change; identity fields are carried over from the original. No
// incremental adjustment is attempted: an edited amount changes two or
// three balances at once and re-deriving from the log is the simpler,
// safer path.
func (e *Engine) EditTransaction(original, updated *models.Transaction) (*models.OperationResult, error) {
	unlock := e.lockEvent(original.EventID)
	defer unlock()

	merged := original.Clone()
	merged.Amount = updated.Amount
	merged.Comment = updated.Comment
	merged.Denominations = models.CloneDenominations(updated.Denominations)

	found, err := e.store.UpdateTransaction(merged)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if !found {
		return fail("Transaktion nicht gefunden."), ErrTransactionNotFound
	}

	result, err := e.recomputeLocked(original.EventID)
	if err != nil || !result.Success {
		return result, err
	}
	return ok("Transaktion erfolgreich aktualisiert.", result.Balances), nil
}

// DeleteTransaction removes a log entry and re-derives the event's
// snapshot. Deleting an upstream deposit can legitimately drive a
// register negative; the log is the source of truth and the snapshot
// reflects it.
func (e *Engine) DeleteTransaction(eventID, txnID string) (*models.OperationResult, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()

	found, err := e.store.DeleteTransaction(txnID)
	if err != nil {
		return nil, fmt.Errorf("delete transaction: %w", err)
	}
	if !found {
		return fail("Transaktion nicht gefunden."), ErrTransactionNotFound
	}

	result, err := e.recomputeLocked(eventID)
	if err != nil || !result.Success {
		return result, err
	}
	return ok("Transaktion erfolgreich gelöscht.", result.Balances), nil
}

// Import bulk-appends externally supplied transactions and re-derives
// the snapshot. There is no incremental path: imported entries may
// arrive in any order and may reference registers only by name.
func (e *Engine) Import(eventID string, txns []*models.Transaction) (*models.OperationResult, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()

	if _, err := e.snapshot(eventID); err != nil {
		return nil, err
	}

	for _, txn := range txns {
		txn.EventID = eventID
		if err := e.store.AppendTransaction(txn); err != nil {
			return nil, fmt.Errorf("append transaction: %w", err)
		}
	}

	result, err := e.recomputeLocked(eventID)
	if err != nil || !result.Success {
		return result, err
	}
	return ok(fmt.Sprintf("%d Transaktionen wurden importiert.", len(txns)), result.Balances), nil
}

// Recompute re-derives the event's balance snapshot from the complete
// transaction log. The register set, ids and names are preserved; only
// balances and denomination ledgers are rebuilt. Idempotent: a second
// call with an unchanged log yields an identical snapshot.
func (e *Engine) Recompute(eventID string) (*models.OperationResult, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()
	return e.recomputeLocked(eventID)
}

func (e *Engine) recomputeLocked(eventID string) (*models.OperationResult, error) {
	balance, err := e.store.GetBalance(eventID)
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	if balance == nil {
		return fail("Aktuelle Saldendaten nicht gefunden."), ErrBalanceNotFound
	}

	for i := range balance.Registers {
		balance.Registers[i].Balance = decimal.Zero
		balance.Registers[i].Denominations = nil
	}
	balance.BankBalance = decimal.Zero

	txns, err := e.store.ListTransactions(eventID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	for _, txn := range txns {
		applyTransaction(balance, txn)
	}

	if err := e.store.PutBalance(balance); err != nil {
		return nil, fmt.Errorf("save balance: %w", err)
	}
	return ok("Salden wurden neu berechnet.", balance), nil
}

// ResetEvent drops the event's transactions and zeroes its snapshot,
// keeping register identities intact.
func (e *Engine) ResetEvent(eventID string) (*models.OperationResult, error) {
	unlock := e.lockEvent(eventID)
	defer unlock()
	return e.resetLocked(eventID)
}

func (e *Engine) resetLocked(eventID string) (*models.OperationResult, error) {
	if err := e.store.DeleteEventTransactions(eventID); err != nil {
		return nil, fmt.Errorf("delete transactions: %w", err)
	}

	balance, err := e.store.GetBalance(eventID)
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	if balance != nil {
		for i := range balance.Registers {
			balance.Registers[i].Balance = decimal.Zero
			balance.Registers[i].Denominations = nil
		}
		balance.BankBalance = decimal.Zero
		if err := e.store.PutBalance(balance); err != nil {
			return nil, fmt.Errorf("save balance: %w", err)
		}
	}
	return ok("Event wurde zurückgesetzt.", balance), nil
}
