package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vereinskasse/kassenbuch/internal/ledger"
)

// EventsHandler handles event-related API endpoints.
type EventsHandler struct {
	engine *ledger.Engine
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(engine *ledger.Engine) *EventsHandler {
	return &EventsHandler{engine: engine}
}

// List handles GET /api/v1/events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.engine.ListEvents()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// Create handles POST /api/v1/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing event name")
		return
	}

	event, err := h.engine.CreateEvent(req.Name)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to create event")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"event": event})
}

// Delete handles DELETE /api/v1/events/{id}.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.engine.DeleteEvent(id); err != nil {
		if errors.Is(err, ledger.ErrEventNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Event not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /api/v1/events/{id}/reset.
func (h *EventsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.ResetEvent(chi.URLParam(r, "id"))
	writeResult(w, result, err)
}

// Balance handles GET /api/v1/events/{id}/balance.
func (h *EventsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.engine.Balance(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load balance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"balance": balance})
}

// Recalculate handles POST /api/v1/events/{id}/recalculate.
func (h *EventsHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.Recompute(chi.URLParam(r, "id"))
	writeResult(w, result, err)
}
