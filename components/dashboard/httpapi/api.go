package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/dashboard/commands"
	"github.com/goliatone/go-orderboard/components/dashboard/queries"
	"github.com/goliatone/go-orderboard/components/orders"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	API       Executor
	Orders    *orders.Store
	Broadcast *dashboard.BroadcastHook
	Telemetry commands.Telemetry
	// NewID generates order session ids. Defaults to uuid.NewString.
	NewID func() string
}

// SessionResponse is returned by the session endpoints.
type SessionResponse struct {
	SessionID string          `json:"session"`
	Snapshot  orders.Snapshot `json:"snapshot"`
}

// Register mounts every handler on mux under prefix.
func (h *Handlers) Register(mux *http.ServeMux, prefix string) {
	prefix = strings.TrimRight(prefix, "/")
	mux.HandleFunc("POST "+prefix+"/api/widgets", h.HandleAssignWidget)
	mux.HandleFunc("POST "+prefix+"/api/widgets/reorder", h.HandleReorderWidgets)
	mux.HandleFunc("POST "+prefix+"/api/widgets/refresh", h.HandleRefresh)
	mux.HandleFunc("GET "+prefix+"/api/orders", h.HandleListOrders)
	mux.HandleFunc("GET "+prefix+"/api/orders/statuses", h.HandleOrderStatuses)
	mux.HandleFunc("POST "+prefix+"/api/orders/sessions", h.HandleOpenSession)
	mux.HandleFunc("GET "+prefix+"/api/orders/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleGetSession(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST "+prefix+"/api/orders/sessions/{id}/events", func(w http.ResponseWriter, r *http.Request) {
		h.HandleSessionEvent(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("DELETE "+prefix+"/api/orders/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleCloseSession(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("GET "+prefix+"/orders/export.xlsx", h.HandleExport)
	if h.Broadcast != nil {
		mux.HandleFunc("GET "+prefix+"/events", h.Broadcast.ServeSSE)
		mux.HandleFunc("GET "+prefix+"/ws", h.Broadcast.ServeWebSocket)
	}
}

func (h *Handlers) HandleAssignWidget(w http.ResponseWriter, r *http.Request) {
	var payload dashboard.AddWidgetRequest
	if !decode(w, r, &payload) {
		return
	}
	if err := h.API.Assign(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderWidgetsInput
	if !decode(w, r, &payload) {
		return
	}
	if err := h.API.Reorder(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload dashboard.RefreshEvent
	if !decode(w, r, &payload) {
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// HandleListOrders derives a page from the query string without any session.
func (h *Handlers) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	state, err := orders.ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := h.API.Page(r.Context(), state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handlers) HandleOrderStatuses(w http.ResponseWriter, r *http.Request) {
	state, err := orders.ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	breakdown, err := h.API.Statuses(r.Context(), state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (h *Handlers) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	newID := h.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	id := newID()
	if err := h.API.OpenSession(r.Context(), commands.OpenOrderSessionInput{SessionID: id}); err != nil {
		writeError(w, err)
		return
	}
	h.respondSession(r.Context(), w, http.StatusCreated, id)
}

func (h *Handlers) HandleGetSession(w http.ResponseWriter, r *http.Request, id string) {
	h.respondSession(r.Context(), w, http.StatusOK, id)
}

// HandleSessionEvent applies one JSON encoded orders.Event and returns the new snapshot.
func (h *Handlers) HandleSessionEvent(w http.ResponseWriter, r *http.Request, id string) {
	var event orders.Event
	if !decode(w, r, &event) {
		return
	}
	if err := h.API.ApplyEvent(r.Context(), commands.ApplyOrderEventInput{SessionID: id, Event: event}); err != nil {
		writeError(w, err)
		return
	}
	h.respondSession(r.Context(), w, http.StatusOK, id)
}

func (h *Handlers) HandleCloseSession(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.API.CloseSession(r.Context(), commands.CloseOrderSessionInput{SessionID: id}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleExport writes the filtered and sorted orders of the query state as an xlsx workbook.
// Pagination is ignored.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	if h.Orders == nil {
		writeError(w, ErrNotConfigured)
		return
	}
	state, err := orders.ParseStoreQuery(h.Orders, r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	rows := orders.Ordered(h.Orders, state)
	var buf bytes.Buffer
	if err := orders.ExportXLSX(&buf, rows); err != nil {
		writeError(w, err)
		return
	}
	if h.Telemetry != nil {
		h.Telemetry.Record(r.Context(), "orders.export", map[string]any{
			"rows":  len(rows),
			"query": state.Query().Encode(),
		})
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="orders.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handlers) respondSession(ctx context.Context, w http.ResponseWriter, status int, id string) {
	snap, err := h.API.Snapshot(ctx, queries.OrderSnapshotInput{SessionID: id})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, SessionResponse{SessionID: id, Snapshot: snap})
}

func decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if r.Body == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request body is required"})
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if errors.Is(err, ErrNotConfigured) {
		status = http.StatusNotImplemented
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
