package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vereinskasse/kassenbuch/internal/ledger"
)

// RegistersHandler handles the register directory endpoints.
type RegistersHandler struct {
	engine *ledger.Engine
}

// NewRegistersHandler creates a new RegistersHandler.
func NewRegistersHandler(engine *ledger.Engine) *RegistersHandler {
	return &RegistersHandler{engine: engine}
}

type registerNameRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/v1/events/{id}/registers.
func (h *RegistersHandler) List(w http.ResponseWriter, r *http.Request) {
	registers, err := h.engine.Registers(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list registers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"registers": registers})
}

// Create handles POST /api/v1/events/{id}/registers.
func (h *RegistersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req registerNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	result, err := h.engine.AddRegister(chi.URLParam(r, "id"), req.Name)
	writeResult(w, result, err)
}

// Update handles PUT /api/v1/events/{id}/registers/{rid}.
func (h *RegistersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req registerNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	result, err := h.engine.RenameRegister(chi.URLParam(r, "id"), chi.URLParam(r, "rid"), req.Name)
	writeResult(w, result, err)
}

// Delete handles DELETE /api/v1/events/{id}/registers/{rid}.
func (h *RegistersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.RemoveRegister(chi.URLParam(r, "id"), chi.URLParam(r, "rid"))
	writeResult(w, result, err)
}
