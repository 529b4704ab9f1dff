package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vereinskasse/kassenbuch/internal/ledger"
	"github.com/vereinskasse/kassenbuch/internal/models"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, error, description string) {
	writeJSON(w, status, ErrorResponse{
		Error:            error,
		ErrorDescription: description,
	})
}

// writeResult maps an engine outcome to an HTTP response. Domain
// failures keep the structured {success, message} shape with a status
// derived from the error kind; persistence failures become 500s.
func writeResult(w http.ResponseWriter, result *models.OperationResult, err error) {
	switch {
	case result == nil:
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Interner Fehler beim Speichern.")
	case result.Success:
		writeJSON(w, http.StatusOK, result)
	default:
		writeJSON(w, statusForError(err), result)
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrRegisterNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrBalanceNotFound),
		errors.Is(err, ledger.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInvalidTransfer),
		errors.Is(err, ledger.ErrRegisterInUse),
		errors.Is(err, ledger.ErrInvalidRegisterName):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
