package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/dashboard/gorouter"
	"github.com/goliatone/go-orderboard/components/orders"
	"github.com/goliatone/go-orderboard/pkg/analytics"
	dashboardpkg "github.com/goliatone/go-orderboard/pkg/dashboard"
	"github.com/goliatone/go-orderboard/pkg/goadmin"
)

type serveCmd struct {
	Addr       string        `default:":8080" env:"ORDERBOARD_ADDR" help:"Listen address."`
	BasePath   string        `name:"base-path" default:"/admin" env:"ORDERBOARD_BASE_PATH" help:"Path prefix for every page and endpoint."`
	Transport  string        `default:"fiber" enum:"fiber,http" help:"HTTP stack: fiber via go-router, or net/http."`
	Theme      string        `env:"ORDERBOARD_THEME" help:"Default theme variant (light, dark). Overrides the manifest theme."`
	Title      string        `default:"Orderboard" help:"Application title."`
	Manifest   string        `type:"path" help:"Layout manifest YAML seeding the overview widgets."`
	Dataset    string        `type:"path" help:"Overview dataset YAML replacing the built-in KPI, sales and revenue data."`
	ChartTTL   time.Duration `name:"chart-ttl" default:"1m" help:"How long rendered charts are cached. Zero disables the cache."`
	AssetsHost string        `name:"assets-host" help:"ECharts assets host. Defaults to $ORDERBOARD_ECHARTS_CDN or the public bucket."`
}

func (c *serveCmd) app(ctx context.Context, logger *slog.Logger) (*dashboardpkg.App, error) {
	cfg := dashboardpkg.Config{
		Manifest:   c.Manifest,
		Theme:      c.Theme,
		BasePath:   strings.TrimRight(c.BasePath, "/"),
		Title:      c.Title,
		ChartTTL:   c.ChartTTL,
		AssetsHost: c.AssetsHost,
		Logger:     logger,
	}
	if c.Dataset != "" {
		cfg.Overview = analytics.NewOverviewRepository(analytics.FileSource{Path: c.Dataset}, nil)
	}
	return dashboardpkg.New(ctx, cfg)
}

func (c *serveCmd) Run(ctx context.Context, logger *slog.Logger) error {
	app, err := c.app(ctx, logger)
	if err != nil {
		return err
	}
	basePath := strings.TrimRight(c.BasePath, "/")

	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         app.Service,
		BasePath:        basePath,
		MenuBuilder:     logMenuBuilder{logger: logger},
	})
	if err != nil {
		return err
	}
	if err := admin.Bootstrap(ctx); err != nil {
		return err
	}

	logger.Info("orderboard ready",
		"addr", c.Addr,
		"transport", c.Transport,
		"overview", dashboard.JoinPath(basePath, dashboard.RouteOverview),
		"orders", dashboard.JoinPath(basePath, dashboard.RouteOrders),
	)
	if c.Transport == "http" {
		return c.serveHTTP(ctx, app, basePath, logger)
	}
	return c.serveFiber(ctx, app, basePath, logger)
}

func (c *serveCmd) serveFiber(ctx context.Context, app *dashboardpkg.App, basePath string, logger *slog.Logger) error {
	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: app.Controller,
		API:        app.Executor,
		Broadcast:  app.Broadcast,
		Telemetry:  app.Telemetry,
		BasePath:   basePath,
	}); err != nil {
		return err
	}
	errc := make(chan error, 1)
	go func() { errc <- server.Serve(c.Addr) }()
	return awaitServer(ctx, errc, server.Shutdown, logger)
}

func (c *serveCmd) serveHTTP(ctx context.Context, app *dashboardpkg.App, basePath string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	app.Handlers.Register(mux, basePath)
	mountPages(mux, app.Controller, basePath, logger)

	server := &http.Server{Addr: c.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- server.ListenAndServe() }()
	return awaitServer(ctx, errc, server.Shutdown, logger)
}

const shutdownTimeout = 5 * time.Second

// awaitServer blocks until the listener fails or ctx ends, then drains
// in-flight requests through shutdown.
func awaitServer(ctx context.Context, errc <-chan error, shutdown func(context.Context) error, logger *slog.Logger) error {
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("orderboard stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("orderboard shutdown: %w", err)
		}
		return nil
	}
}

// mountPages serves the overview and order list pages on a net/http mux.
func mountPages(mux *http.ServeMux, controller *dashboard.Controller, basePath string, logger *slog.Logger) {
	viewer := func(r *http.Request) dashboard.ViewerContext {
		theme := dashboard.ThemeLight
		if strings.EqualFold(r.URL.Query().Get("theme"), dashboard.ThemeDark) ||
			strings.EqualFold(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), dashboard.ThemeDark) {
			theme = dashboard.ThemeDark
		}
		return dashboard.ViewerContext{Theme: theme, Path: r.URL.Path}
	}
	mux.HandleFunc("GET "+dashboard.JoinPath(basePath, dashboard.RouteOverview)+"{$}", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := controller.RenderOverview(r.Context(), viewer(r), &buf); err != nil {
			logger.Error("render overview", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeHTML(w, buf.Bytes())
	})
	mux.HandleFunc("GET "+dashboard.JoinPath(basePath, dashboard.RouteOrders), func(w http.ResponseWriter, r *http.Request) {
		state, err := orders.ParseStoreQuery(controller.Orders(), r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var buf bytes.Buffer
		if err := controller.RenderOrders(viewer(r), state, &buf); err != nil {
			logger.Error("render orders", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeHTML(w, buf.Bytes())
	})
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type logMenuBuilder struct {
	logger *slog.Logger
}

func (b logMenuBuilder) EnsureMenuItem(_ context.Context, menuCode string, item goadmin.MenuItem) error {
	b.logger.Debug("menu item", "menu", menuCode, "label", item.Label, "route", item.Route, "position", item.Position)
	return nil
}
