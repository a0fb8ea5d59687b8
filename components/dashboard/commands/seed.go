package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-orderboard/components/dashboard"
)

// SeedDashboardInput controls bootstrap behavior. Empty Placements seed the stock overview.
type SeedDashboardInput struct {
	SeedLayout bool
	Placements []dashboard.AddWidgetRequest
}

// SeedDashboardCommand registers areas and definitions and optionally seeds the layout.
type SeedDashboardCommand struct {
	service   *dashboard.Service
	telemetry Telemetry
}

// NewSeedDashboardCommand wires dependencies.
func NewSeedDashboardCommand(service *dashboard.Service, telemetry Telemetry) *SeedDashboardCommand {
	return &SeedDashboardCommand{
		service:   service,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[SeedDashboardInput] = (*SeedDashboardCommand)(nil)

// Execute runs the bootstrap pipeline.
func (c *SeedDashboardCommand) Execute(ctx context.Context, msg SeedDashboardInput) error {
	if c.service == nil {
		return errors.New("seed command requires service")
	}
	if err := dashboard.RegisterAreas(ctx, c.service.Store()); err != nil {
		return err
	}
	if err := dashboard.RegisterDefinitions(ctx, c.service.Store(), c.service.Registry()); err != nil {
		return err
	}
	if msg.SeedLayout {
		if err := dashboard.SeedLayout(ctx, c.service, msg.Placements); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, "dashboard.seed", map[string]any{"seed_layout": msg.SeedLayout})
	return nil
}
