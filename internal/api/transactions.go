package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vereinskasse/kassenbuch/internal/ledger"
	"github.com/vereinskasse/kassenbuch/internal/models"
	"github.com/vereinskasse/kassenbuch/internal/xlsx"
)

// TransactionsHandler handles the transaction log endpoints: deposits,
// withdrawals, edits, deletes and the XLSX import/export bridge.
type TransactionsHandler struct {
	engine *ledger.Engine
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(engine *ledger.Engine) *TransactionsHandler {
	return &TransactionsHandler{engine: engine}
}

// List handles GET /api/v1/events/{id}/transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	txns, err := h.engine.Transactions(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list transactions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": txns})
}

// Deposit handles POST /api/v1/events/{id}/deposits.
func (h *TransactionsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if !req.Amount.IsPositive() {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Amount must be positive")
		return
	}
	if req.RegisterID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing register_id")
		return
	}

	result, err := h.engine.Deposit(chi.URLParam(r, "id"), req)
	writeResult(w, result, err)
}

// Withdraw handles POST /api/v1/events/{id}/withdrawals.
func (h *TransactionsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req models.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if !req.Amount.IsPositive() {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Amount must be positive")
		return
	}
	if req.SourceRegisterID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing source_register_id")
		return
	}

	result, err := h.engine.Withdraw(chi.URLParam(r, "id"), req)
	writeResult(w, result, err)
}

// updateTransactionRequest carries the mutable transaction fields.
type updateTransactionRequest struct {
	Amount        decimal.Decimal       `json:"amount"`
	Comment       string                `json:"comment"`
	Denominations []models.Denomination `json:"denominations,omitempty"`
}

// Update handles PUT /api/v1/events/{id}/transactions/{txnID}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	txnID := chi.URLParam(r, "txnID")

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if !req.Amount.IsPositive() {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Amount must be positive")
		return
	}

	original, err := h.findTransaction(eventID, txnID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load transaction")
		return
	}
	if original == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "Transaction not found")
		return
	}

	updated := original.Clone()
	updated.Amount = req.Amount
	updated.Comment = req.Comment
	updated.Denominations = req.Denominations

	result, err := h.engine.EditTransaction(original, updated)
	writeResult(w, result, err)
}

// Delete handles DELETE /api/v1/events/{id}/transactions/{txnID}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.DeleteTransaction(chi.URLParam(r, "id"), chi.URLParam(r, "txnID"))
	writeResult(w, result, err)
}

// Import handles POST /api/v1/events/{id}/import. The body is an XLSX
// workbook in the export layout.
func (h *TransactionsHandler) Import(w http.ResponseWriter, r *http.Request) {
	txns, err := xlsx.Import(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", fmt.Sprintf("Failed to parse workbook: %v", err))
		return
	}

	result, err := h.engine.Import(chi.URLParam(r, "id"), txns)
	writeResult(w, result, err)
}

// Export handles GET /api/v1/events/{id}/export.
func (h *TransactionsHandler) Export(w http.ResponseWriter, r *http.Request) {
	txns, err := h.engine.Transactions(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list transactions")
		return
	}

	data, err := xlsx.Export(txns)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to render workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="transaktionen.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *TransactionsHandler) findTransaction(eventID, txnID string) (*models.Transaction, error) {
	txns, err := h.engine.Transactions(eventID)
	if err != nil {
		return nil, err
	}
	for _, txn := range txns {
		if txn.ID == txnID {
			return txn, nil
		}
	}
	return nil, nil
}
