// Package dashboard assembles the orderboard components into a ready to serve application.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	core "github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/dashboard/httpapi"
	"github.com/goliatone/go-orderboard/components/orders"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Controller renders the overview and order list pages.
type Controller = core.Controller

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// Config selects the data and presentation of an App. Zero values use the built-in demo data.
type Config struct {
	Orders   *orders.Store
	Overview core.OverviewRepository
	Feed     core.PanelFeed
	// Manifest is an optional YAML layout manifest path. Empty seeds the stock overview.
	Manifest string
	// Theme is the default variant; it overrides the manifest theme.
	Theme    string
	BasePath string
	Title    string
	ChartTTL time.Duration
	// AssetsHost serves the ECharts runtime. Empty falls back to ORDERBOARD_ECHARTS_CDN.
	AssetsHost string
	Logger     *slog.Logger
	Renderer   core.Renderer
}

// App is the wired set of components shared by every transport.
type App struct {
	Service    *Service
	Controller *Controller
	Sessions   *orders.SessionStore
	Broadcast  *core.BroadcastHook
	Executor   *httpapi.CommandExecutor
	Telemetry  *core.SlogTelemetry
	Handlers   *httpapi.Handlers
}

// New builds and seeds an App.
func New(ctx context.Context, cfg Config) (*App, error) {
	store := cfg.Orders
	if store == nil {
		store = orders.DefaultStore()
	}
	overview := cfg.Overview
	if overview == nil {
		overview = core.StaticOverviewRepository{}
	}
	feed := cfg.Feed
	if feed == nil {
		feed = core.DefaultPanelFeed()
	}
	var manifest *core.LayoutManifest
	if cfg.Manifest != "" {
		var err error
		if manifest, err = core.ReadLayoutManifest(cfg.Manifest); err != nil {
			return nil, err
		}
	}
	theme := cfg.Theme
	if theme == "" && manifest != nil {
		theme = manifest.Theme
	}
	themes := core.DefaultThemeCatalog()
	if theme != "" {
		if !themes.Has(theme) {
			return nil, fmt.Errorf("dashboard: unknown theme %q", theme)
		}
		themes = core.NewThemeCatalog(strings.ToLower(strings.TrimSpace(theme)), themeSelections(themes)...)
	}

	var chartOptions []core.EChartsProviderOption
	if cfg.ChartTTL > 0 {
		chartOptions = append(chartOptions, core.WithChartCache(core.NewChartCache(cfg.ChartTTL)))
	}
	if cfg.AssetsHost != "" {
		chartOptions = append(chartOptions, core.WithChartAssetsHost(cfg.AssetsHost))
	}
	telemetry := core.NewSlogTelemetry(cfg.Logger)
	broadcast := core.NewBroadcastHook()
	service := core.NewService(core.Options{
		Providers:   core.NewRegistryWithProviders(core.NewOverviewProviders(overview, feed, chartOptions...)),
		Themes:      themes,
		Telemetry:   telemetry,
		RefreshHook: broadcast,
	})

	if manifest != nil {
		if err := manifest.Apply(ctx, service); err != nil {
			return nil, err
		}
	} else if err := core.Bootstrap(ctx, service, nil); err != nil {
		return nil, err
	}

	renderer := cfg.Renderer
	if renderer == nil {
		var err error
		if renderer, err = core.NewTemplateRenderer(); err != nil {
			return nil, fmt.Errorf("dashboard: templates: %w", err)
		}
	}
	controller := core.NewController(core.ControllerOptions{
		Service:  service,
		Orders:   store,
		Renderer: renderer,
		Themes:   themes,
		BasePath: cfg.BasePath,
		Title:    cfg.Title,
	})

	sessions := orders.NewSessionStore(store)
	executor := httpapi.NewCommandExecutor(service, sessions, telemetry)
	return &App{
		Service:    service,
		Controller: controller,
		Sessions:   sessions,
		Broadcast:  broadcast,
		Executor:   executor,
		Telemetry:  telemetry,
		Handlers: &httpapi.Handlers{
			API:       executor,
			Orders:    store,
			Broadcast: broadcast,
			Telemetry: telemetry,
		},
	}, nil
}

func themeSelections(catalog *core.ThemeCatalog) []*core.ThemeSelection {
	names := catalog.Variants()
	out := make([]*core.ThemeSelection, 0, len(names))
	for _, name := range names {
		out = append(out, catalog.Select(name))
	}
	return out
}
