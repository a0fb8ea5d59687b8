package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/dashboard/commands"
	"github.com/goliatone/go-orderboard/components/orders"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(_ context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func newServer(t *testing.T) (*http.ServeMux, *orders.SessionStore, *recordingTelemetry) {
	t.Helper()
	sessions := orders.NewSessionStore(orders.DefaultStore())
	service := dashboard.NewService(dashboard.Options{})
	require.NoError(t, dashboard.Bootstrap(context.Background(), service, nil))
	telemetry := &recordingTelemetry{}
	ids := 0
	handlers := &Handlers{
		API:       NewCommandExecutor(service, sessions, telemetry),
		Orders:    sessions.Records(),
		Telemetry: telemetry,
		NewID: func() string {
			ids++
			return "session-" + string(rune('0'+ids))
		},
	}
	mux := http.NewServeMux()
	handlers.Register(mux, "/admin")
	return mux, sessions, telemetry
}

func do(t *testing.T, mux http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleAssignWidget(t *testing.T) {
	assign := &stubCommander[dashboard.AddWidgetRequest]{}
	api := &Handlers{API: &CommandExecutor{AssignCommander: assign}}
	payload := dashboard.AddWidgetRequest{DefinitionID: dashboard.WidgetKPICards, AreaCode: dashboard.AreaMain}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/widgets", bytes.NewReader(buf))
	rec := httptest.NewRecorder()

	api.HandleAssignWidget(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, assign.calls)
	assert.Equal(t, dashboard.AreaMain, assign.last.AreaCode)
}

func TestHandleAssignWidgetRejectsBadJSON(t *testing.T) {
	assign := &stubCommander[dashboard.AddWidgetRequest]{}
	api := &Handlers{API: &CommandExecutor{AssignCommander: assign}}
	req := httptest.NewRequest(http.MethodPost, "/api/widgets", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	api.HandleAssignWidget(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, assign.calls)
}

func TestHandleReorderWidgets(t *testing.T) {
	reorder := &stubCommander[commands.ReorderWidgetsInput]{}
	api := &Handlers{API: &CommandExecutor{ReorderCommander: reorder}}
	payload := commands.ReorderWidgetsInput{AreaCode: dashboard.AreaMain, WidgetIDs: []string{"w1", "w2"}}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/widgets/reorder", bytes.NewReader(buf))
	rec := httptest.NewRecorder()

	api.HandleReorderWidgets(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"w1", "w2"}, reorder.last.WidgetIDs)
}

func TestHandleRefresh(t *testing.T) {
	refresh := &stubCommander[dashboard.RefreshEvent]{}
	api := &Handlers{API: &CommandExecutor{RefreshCommander: refresh}}
	req := httptest.NewRequest(http.MethodPost, "/api/widgets/refresh", strings.NewReader(`{"topic":"layout","reason":"manual"}`))
	rec := httptest.NewRecorder()

	api.HandleRefresh(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "manual", refresh.last.Reason)
}

func TestUnconfiguredExecutorReturnsNotImplemented(t *testing.T) {
	api := &Handlers{API: &CommandExecutor{}}
	req := httptest.NewRequest(http.MethodPost, "/api/widgets/reorder", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	api.HandleReorderWidgets(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestListOrdersFromQuery(t *testing.T) {
	mux, _, _ := newServer(t)

	rec := do(t, mux, http.MethodGet, "/admin/api/orders?q=CM980&sort=status&dir=desc&size=5", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var snap orders.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 9, snap.TotalFiltered)
	assert.Equal(t, 2, snap.PageCount)
	require.Len(t, snap.Rows, 5)
	assert.Equal(t, orders.StatusRejected, snap.Rows[0].Status)
}

func TestListOrdersRejectsBadQuery(t *testing.T) {
	mux, _, _ := newServer(t)

	rec := do(t, mux, http.MethodGet, "/admin/api/orders?size=7", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "page size")

	rec = do(t, mux, http.MethodGet, "/admin/api/orders?sort=colour", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderStatuses(t *testing.T) {
	mux, _, _ := newServer(t)

	rec := do(t, mux, http.MethodGet, "/admin/api/orders/statuses?q=CM980", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total    int `json:"total"`
		Statuses []struct {
			Status  string  `json:"status"`
			Percent float64 `json:"percent"`
		} `json:"statuses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 9, body.Total)
	require.Len(t, body.Statuses, 5)
	assert.InDelta(t, 22.2, body.Statuses[0].Percent, 1e-9)
}

func TestSessionLifecycle(t *testing.T) {
	mux, sessions, telemetry := newServer(t)

	rec := do(t, mux, http.MethodPost, "/admin/api/orders/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var opened SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))
	assert.Equal(t, "session-1", opened.SessionID)
	assert.Len(t, opened.Snapshot.Rows, 10)

	rec = do(t, mux, http.MethodPost, "/admin/api/orders/sessions/session-1/events", orders.PageSizeChanged(5))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var paged SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paged))
	assert.Len(t, paged.Snapshot.Rows, 5)
	assert.Equal(t, 2, paged.Snapshot.PageCount)

	rec = do(t, mux, http.MethodPost, "/admin/api/orders/sessions/session-1/events", orders.RowToggled("#CM9801"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodGet, "/admin/api/orders/sessions/session-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var current SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.Equal(t, []string{"#CM9801"}, current.Snapshot.SelectedIDs)
	assert.True(t, current.Snapshot.Indeterminate)

	rec = do(t, mux, http.MethodDelete, "/admin/api/orders/sessions/session-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, sessions.Len())

	rec = do(t, mux, http.MethodGet, "/admin/api/orders/sessions/session-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Contains(t, telemetry.events, "orders.session.open")
	assert.Contains(t, telemetry.events, "orders.event.page_size")
	assert.Contains(t, telemetry.events, "orders.event.row_toggle")
	assert.Contains(t, telemetry.events, "orders.session.close")
}

func TestSessionEventValidation(t *testing.T) {
	mux, _, _ := newServer(t)
	require.Equal(t, http.StatusCreated, do(t, mux, http.MethodPost, "/admin/api/orders/sessions", nil).Code)

	rec := do(t, mux, http.MethodPost, "/admin/api/orders/sessions/session-1/events", orders.PageSizeChanged(7))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPost, "/admin/api/orders/sessions/session-1/events", orders.RowToggled("#NOPE"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPost, "/admin/api/orders/sessions/missing/events", orders.PageChanged(1))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "missing")
}

func TestExportWorkbook(t *testing.T) {
	mux, _, telemetry := newServer(t)

	rec := do(t, mux, http.MethodGet, "/admin/orders/export.xlsx?q=CM980&sort=id&dir=desc&size=5&page=1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))

	book, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "#CM9809", rows[1][0])
	assert.Equal(t, "#CM9801", rows[9][0])
	assert.Contains(t, telemetry.events, "orders.export")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(orders.ErrUnknownField))
	assert.Equal(t, http.StatusBadRequest, StatusFor(dashboard.ErrInvalidConfiguration))
	assert.Equal(t, http.StatusNotFound, StatusFor(orders.ErrSessionNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(orders.ErrSessionExists))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestUnknownSelectedOrderIsBadRequest(t *testing.T) {
	mux, _, telemetry := newServer(t)

	for _, target := range []string{
		"/admin/api/orders?selected=%23CM9801,bogus",
		"/admin/api/orders/statuses?selected=bogus",
		"/admin/orders/export.xlsx?selected=%23CM9801,bogus",
	} {
		rec := do(t, mux, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "unknown order id", target)
	}
	assert.NotContains(t, telemetry.events, "orders.export")

	rec := do(t, mux, http.MethodGet, "/admin/api/orders?selected=%23CM9801,%23CM9802", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var snap orders.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Len(t, snap.SelectedIDs, 2)
	assert.True(t, snap.Indeterminate)
}
