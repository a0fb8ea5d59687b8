package goadmin

import (
	"context"
	"errors"
	"fmt"

	core "github.com/goliatone/go-orderboard/components/dashboard"
	dashboardpkg "github.com/goliatone/go-orderboard/pkg/dashboard"
)

// MenuBuilder ensures orderboard entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures orderboard link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the orderboard service and feature flags into an admin shell.
type Config struct {
	EnableDashboard bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *dashboardpkg.Service
	BasePath        string
	// Navigation supplies the navigable pages. Defaults to the overview and order list.
	Navigation *core.Navigation
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed orderboard menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableDashboard && cfg.Service == nil {
		return nil, errors.New("goadmin: dashboard service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.Navigation == nil {
		nav := core.DefaultNavigation()
		cfg.Navigation = &nav
	}
	return &Admin{cfg: cfg}, nil
}

// Dashboard exposes the configured service when enabled.
func (a *Admin) Dashboard() *dashboardpkg.Service {
	if !a.cfg.EnableDashboard {
		return nil
	}
	return a.cfg.Service
}

// MenuItems returns one entry per navigable page, positioned in menu order.
func (a *Admin) MenuItems() []MenuItem {
	var out []MenuItem
	for _, section := range a.cfg.Navigation.Sections {
		for _, item := range section.Items {
			if !item.Navigable || containsRoute(out, core.JoinPath(a.cfg.BasePath, item.Path)) {
				continue
			}
			out = append(out, MenuItem{
				Label:    item.Label,
				Route:    core.JoinPath(a.cfg.BasePath, item.Path),
				Icon:     item.Icon,
				Position: len(out),
			})
		}
	}
	return out
}

// Bootstrap seeds menu entries when the dashboard is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableDashboard || a.cfg.MenuBuilder == nil {
		return nil
	}
	for _, item := range a.MenuItems() {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("goadmin: ensure %s: %w", item.Route, err)
		}
	}
	return nil
}

func containsRoute(items []MenuItem, route string) bool {
	for _, item := range items {
		if item.Route == route {
			return true
		}
	}
	return false
}
