package dashboard

import (
	"context"
	"errors"
	"fmt"
)

// RegisterAreas ensures the overview areas exist in the store.
func RegisterAreas(ctx context.Context, store WidgetStore) error {
	if store == nil {
		return errors.New("dashboard: widget store is required")
	}
	for _, area := range DefaultAreaDefinitions() {
		if _, err := store.EnsureArea(ctx, area); err != nil {
			return fmt.Errorf("register area %s: %w", area.Code, err)
		}
	}
	return nil
}

// RegisterDefinitions copies every registry definition into the store.
func RegisterDefinitions(ctx context.Context, store WidgetStore, registry ProviderRegistry) error {
	if store == nil {
		return errors.New("dashboard: widget store is required")
	}
	if registry == nil {
		return errors.New("dashboard: provider registry is required")
	}
	for _, def := range registry.Definitions() {
		if _, err := store.EnsureDefinition(ctx, def); err != nil {
			return fmt.Errorf("register definition %s: %w", def.Code, err)
		}
	}
	return nil
}

// SeedLayout places the given widgets, or the default overview when placements is empty.
// Every placement is attempted; failures are joined.
func SeedLayout(ctx context.Context, service *Service, placements []AddWidgetRequest) error {
	if service == nil {
		return errors.New("dashboard: service is required to seed layout")
	}
	if len(placements) == 0 {
		placements = DefaultSeedWidgets()
	}
	var seedErr error
	for _, req := range placements {
		if _, err := service.AddWidget(ctx, req); err != nil {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed %s in %s: %w", req.DefinitionID, req.AreaCode, err))
		}
	}
	return seedErr
}

// Bootstrap registers areas and definitions and seeds the layout in one call.
func Bootstrap(ctx context.Context, service *Service, placements []AddWidgetRequest) error {
	if service == nil {
		return errors.New("dashboard: service is required to bootstrap")
	}
	if err := RegisterAreas(ctx, service.Store()); err != nil {
		return err
	}
	if err := RegisterDefinitions(ctx, service.Store(), service.Registry()); err != nil {
		return err
	}
	if len(placements) == 0 {
		placements = DefaultSeedWidgets()
	}
	if err := SeedLayout(ctx, service, placements); err != nil {
		return err
	}
	service.recordTelemetry(ctx, "dashboard.seed", map[string]any{"placements": len(placements)})
	return nil
}
