package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	router "github.com/goliatone/go-router"
	"github.com/google/uuid"

	"github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/dashboard/commands"
	"github.com/goliatone/go-orderboard/components/dashboard/httpapi"
	"github.com/goliatone/go-orderboard/components/dashboard/queries"
	"github.com/goliatone/go-orderboard/components/orders"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the orderboard controller, APIs and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	Telemetry      commands.Telemetry
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
	// NewID generates order session ids. Defaults to uuid.NewString.
	NewID func() string
}

// RouteConfig customizes the relative paths used for orderboard endpoints.
type RouteConfig struct {
	Overview      string
	Orders        string
	Layout        string
	Export        string
	OrdersAPI     string
	Statuses      string
	Sessions      string
	Session       string
	SessionEvents string
	Widgets       string
	Reorder       string
	Refresh       string
	WebSocket     string
}

var queryKeys = []string{"q", "date", "sort", "dir", "page", "size", "selected"}

// Register mounts the HTML pages, JSON endpoints, order APIs and the refresh websocket.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(strings.TrimRight(cfg.BasePath, "/"))

	group.Get(routes.Overview, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderOverview(ctx.Context(), viewerResolver(ctx), &buf); err != nil {
			return respondError(ctx, err)
		}
		return sendHTML(ctx, buf.Bytes())
	}))

	group.Get(routes.Orders, router.WrapHandler(func(ctx router.Context) error {
		state, err := orders.ParseStoreQuery(cfg.Controller.Orders(), queryValues(ctx))
		if err != nil {
			return respondError(ctx, err)
		}
		var buf bytes.Buffer
		if err := cfg.Controller.RenderOrders(viewerResolver(ctx), state, &buf); err != nil {
			return respondError(ctx, err)
		}
		return sendHTML(ctx, buf.Bytes())
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.LayoutPayload(ctx.Context(), viewerResolver(ctx))
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	group.Get(routes.Export, router.WrapHandler(func(ctx router.Context) error {
		state, err := orders.ParseStoreQuery(cfg.Controller.Orders(), queryValues(ctx))
		if err != nil {
			return respondError(ctx, err)
		}
		rows := orders.Ordered(cfg.Controller.Orders(), state)
		var buf bytes.Buffer
		if err := orders.ExportXLSX(&buf, rows); err != nil {
			return respondError(ctx, err)
		}
		if cfg.Telemetry != nil {
			cfg.Telemetry.Record(ctx.Context(), "orders.export", map[string]any{
				"rows":  len(rows),
				"query": state.Query().Encode(),
			})
		}
		ctx.SetHeader("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		ctx.SetHeader("Content-Disposition", `attachment; filename="orders.xlsx"`)
		return ctx.Send(buf.Bytes())
	}))

	if cfg.API != nil {
		registerAPI(group, cfg, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], cfg Config[T], routes RouteConfig) {
	api := cfg.API

	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload dashboard.AddWidgetRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		if err := api.Assign(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderWidgetsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload dashboard.RefreshEvent
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Get(routes.OrdersAPI, router.WrapHandler(func(ctx router.Context) error {
		state, err := orders.ParseQuery(queryValues(ctx))
		if err != nil {
			return respondError(ctx, err)
		}
		snap, err := api.Page(ctx.Context(), state)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, snap)
	}))

	r.Get(routes.Statuses, router.WrapHandler(func(ctx router.Context) error {
		state, err := orders.ParseQuery(queryValues(ctx))
		if err != nil {
			return respondError(ctx, err)
		}
		breakdown, err := api.Statuses(ctx.Context(), state)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, breakdown)
	}))

	r.Post(routes.Sessions, router.WrapHandler(func(ctx router.Context) error {
		id := newSessionID(cfg.NewID)
		if err := api.OpenSession(ctx.Context(), commands.OpenOrderSessionInput{SessionID: id}); err != nil {
			return respondError(ctx, err)
		}
		return respondSession(ctx, api, http.StatusCreated, id)
	}))

	r.Get(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		return respondSession(ctx, api, http.StatusOK, ctx.Param("id"))
	}))

	r.Post(routes.SessionEvents, router.WrapHandler(func(ctx router.Context) error {
		var event orders.Event
		if err := json.Unmarshal(ctx.Body(), &event); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		id := ctx.Param("id")
		if err := api.ApplyEvent(ctx.Context(), commands.ApplyOrderEventInput{SessionID: id, Event: event}); err != nil {
			return respondError(ctx, err)
		}
		return respondSession(ctx, api, http.StatusOK, id)
	}))

	r.Delete(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		if err := api.CloseSession(ctx.Context(), commands.CloseOrderSessionInput{SessionID: ctx.Param("id")}); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "closed"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondSession(ctx router.Context, api httpapi.Executor, status int, id string) error {
	snap, err := api.Snapshot(ctx.Context(), queries.OrderSnapshotInput{SessionID: id})
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(status, httpapi.SessionResponse{SessionID: id, Snapshot: snap})
}

func newSessionID(gen func() string) string {
	if gen != nil {
		return gen()
	}
	return uuid.NewString()
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if locale, ok := ctx.Locals("locale").(string); ok {
		viewer.Locale = locale
	}
	viewer.Theme = inferTheme(ctx.Query("theme"), ctx.Header("Sec-CH-Prefers-Color-Scheme"))
	return viewer
}

// inferTheme prefers an explicit ?theme= value over the client color scheme hint.
func inferTheme(query, hint string) string {
	if theme := strings.ToLower(strings.TrimSpace(query)); theme != "" {
		return theme
	}
	return strings.ToLower(strings.Trim(strings.TrimSpace(hint), `"`))
}

func queryValues(ctx router.Context) url.Values {
	values := url.Values{}
	for _, key := range queryKeys {
		if v := ctx.Query(key); v != "" {
			values.Set(key, v)
		}
	}
	return values
}

func sendHTML(ctx router.Context, body []byte) error {
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(body)
}

func respondError(ctx router.Context, err error) error {
	status := httpapi.StatusFor(err)
	if errors.Is(err, httpapi.ErrNotConfigured) {
		status = http.StatusNotImplemented
	}
	return respondStatus(ctx, status, err)
}

func respondStatus(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Overview == "" {
		routes.Overview = dashboard.RouteOverview
	}
	if routes.Orders == "" {
		routes.Orders = dashboard.RouteOrders
	}
	if routes.Layout == "" {
		routes.Layout = "/_layout"
	}
	if routes.Export == "" {
		routes.Export = dashboard.RouteOrders + "/export.xlsx"
	}
	if routes.OrdersAPI == "" {
		routes.OrdersAPI = "/api/orders"
	}
	if routes.Statuses == "" {
		routes.Statuses = "/api/orders/statuses"
	}
	if routes.Sessions == "" {
		routes.Sessions = "/api/orders/sessions"
	}
	if routes.Session == "" {
		routes.Session = "/api/orders/sessions/:id"
	}
	if routes.SessionEvents == "" {
		routes.SessionEvents = "/api/orders/sessions/:id/events"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/api/widgets"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/api/widgets/reorder"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/api/widgets/refresh"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
