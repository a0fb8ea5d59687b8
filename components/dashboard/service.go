package dashboard

import (
	"context"
	"errors"
	"fmt"
)

const (
	AreaMain  = "orderboard.overview.main"
	AreaPanel = "orderboard.overview.panel"
)

var defaultAreas = []string{AreaMain, AreaPanel}

var (
	ErrAreaRequired       = errors.New("dashboard: area code is required")
	ErrDefinitionRequired = errors.New("dashboard: definition id is required")
	ErrUnknownArea        = errors.New("dashboard: unknown area")
	ErrUnknownWidget      = errors.New("dashboard: unknown widget instance")
)

// Options configures the dashboard Service.
type Options struct {
	WidgetStore     WidgetStore
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	Themes          *ThemeCatalog
	Telemetry       Telemetry
	RefreshHook     RefreshHook
	Areas           []string
}

// Service composes the overview page: widget placement, configuration validation and provider data.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults: an in-memory store, the default registry,
// a JSON schema validator and the light/dark theme catalog.
func NewService(opts Options) *Service {
	if opts.WidgetStore == nil {
		opts.WidgetStore = NewMemoryWidgetStore()
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Themes == nil {
		opts.Themes = DefaultThemeCatalog()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	opts.RefreshHook = normalizeRefreshHook(opts.RefreshHook)
	return &Service{opts: opts}
}

// Store returns the widget store backing the service.
func (s *Service) Store() WidgetStore {
	return s.opts.WidgetStore
}

// Registry returns the provider registry.
func (s *Service) Registry() ProviderRegistry {
	return s.opts.Providers
}

// Themes returns the theme catalog.
func (s *Service) Themes() *ThemeCatalog {
	return s.opts.Themes
}

// Telemetry returns the configured telemetry sink.
func (s *Service) Telemetry() Telemetry {
	return s.opts.Telemetry
}

// AddWidgetRequest places a configured widget in an area.
type AddWidgetRequest struct {
	DefinitionID  string         `json:"definition" yaml:"definition"`
	AreaCode      string         `json:"area" yaml:"area"`
	Configuration map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	Position      *int           `json:"position,omitempty" yaml:"position,omitempty"`
}

// AddWidget validates the configuration, creates the instance and assigns it.
func (s *Service) AddWidget(ctx context.Context, req AddWidgetRequest) (WidgetInstance, error) {
	if req.AreaCode == "" {
		return WidgetInstance{}, ErrAreaRequired
	}
	if req.DefinitionID == "" {
		return WidgetInstance{}, ErrDefinitionRequired
	}
	if err := s.validateConfiguration(req.DefinitionID, req.Configuration); err != nil {
		return WidgetInstance{}, err
	}
	instance, err := s.opts.WidgetStore.CreateInstance(ctx, CreateWidgetInstanceInput{
		DefinitionID:  req.DefinitionID,
		Configuration: req.Configuration,
	})
	if err != nil {
		return WidgetInstance{}, err
	}
	if err := s.opts.WidgetStore.AssignInstance(ctx, AssignWidgetInput{
		AreaCode:   req.AreaCode,
		InstanceID: instance.ID,
		Position:   req.Position,
	}); err != nil {
		return WidgetInstance{}, err
	}
	instance.AreaCode = req.AreaCode
	s.recordTelemetry(ctx, "dashboard.widget.add", map[string]any{
		"area_code":     req.AreaCode,
		"definition_id": req.DefinitionID,
		"widget_id":     instance.ID,
	})
	s.notify(ctx, RefreshEvent{Topic: TopicLayout, Reason: "widget.add", AreaCode: req.AreaCode, WidgetID: instance.ID})
	return instance, nil
}

// ReorderWidgets changes widget ordering within an area.
func (s *Service) ReorderWidgets(ctx context.Context, areaCode string, widgetIDs []string) error {
	if areaCode == "" {
		return ErrAreaRequired
	}
	if err := s.opts.WidgetStore.ReorderArea(ctx, ReorderAreaInput{
		AreaCode:  areaCode,
		WidgetIDs: widgetIDs,
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.widget.reorder", map[string]any{
		"area_code": areaCode,
		"count":     len(widgetIDs),
	})
	s.notify(ctx, RefreshEvent{Topic: TopicLayout, Reason: "widget.reorder", AreaCode: areaCode})
	return nil
}

// ConfigureLayout resolves every area with provider data attached.
func (s *Service) ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	layout := Layout{Areas: make(map[string][]WidgetInstance)}
	for _, area := range s.areaList() {
		resolved, err := s.resolve(ctx, viewer, area)
		if err != nil {
			return Layout{}, err
		}
		layout.Areas[area] = resolved.Widgets
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"viewer": viewer.UserID,
		"theme":  viewer.Theme,
	})
	return layout, nil
}

// ResolveArea retrieves a single area with provider data attached.
func (s *Service) ResolveArea(ctx context.Context, viewer ViewerContext, areaCode string) (ResolvedArea, error) {
	if areaCode == "" {
		return ResolvedArea{}, ErrAreaRequired
	}
	resolved, err := s.resolve(ctx, viewer, areaCode)
	if err != nil {
		return ResolvedArea{}, err
	}
	s.recordTelemetry(ctx, "dashboard.area.resolve", map[string]any{
		"viewer":    viewer.UserID,
		"area_code": areaCode,
	})
	return resolved, nil
}

// Areas lists the area codes the layout is resolved for.
func (s *Service) Areas() []string {
	return append([]string{}, s.areaList()...)
}

func (s *Service) resolve(ctx context.Context, viewer ViewerContext, area string) (ResolvedArea, error) {
	resolved, err := s.opts.WidgetStore.ResolveArea(ctx, ResolveAreaInput{
		AreaCode: area,
		Locale:   viewer.Locale,
	})
	if err != nil {
		return ResolvedArea{}, fmt.Errorf("dashboard: resolve area %s: %w", area, err)
	}
	for i := range resolved.Widgets {
		resolved.Widgets[i].AreaCode = area
	}
	resolved.AreaCode = area
	resolved.Widgets = s.attachProviderData(ctx, viewer, resolved.Widgets)
	return resolved, nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// RefreshHook returns the hook notified of layout changes.
func (s *Service) RefreshHook() RefreshHook {
	return s.opts.RefreshHook
}

// notify publishes event; a failing hook is recorded and never fails the caller.
func (s *Service) notify(ctx context.Context, event RefreshEvent) {
	if err := s.opts.RefreshHook.Publish(ctx, event); err != nil {
		s.recordTelemetry(ctx, "dashboard.refresh.error", map[string]any{
			"topic":  event.Topic,
			"reason": event.Reason,
			"error":  err.Error(),
		})
	}
}

func (s *Service) validateConfiguration(definitionID string, config map[string]any) error {
	def, ok := s.opts.Providers.Definition(definitionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDefinitionNotFound, definitionID)
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

func (s *Service) areaList() []string {
	if len(s.opts.Areas) > 0 {
		return s.opts.Areas
	}
	return defaultAreas
}

// attachProviderData stores each provider's payload under Metadata["data"]. Provider failures
// are recorded and leave the widget without data.
func (s *Service) attachProviderData(ctx context.Context, viewer ViewerContext, widgets []WidgetInstance) []WidgetInstance {
	if len(widgets) == 0 {
		return widgets
	}
	theme := s.opts.Themes.Select(viewer.Theme)
	enriched := make([]WidgetInstance, len(widgets))
	copy(enriched, widgets)
	for i, inst := range enriched {
		provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
		if !ok || provider == nil {
			continue
		}
		data, err := provider.Fetch(ctx, WidgetContext{
			Instance: inst,
			Viewer:   viewer,
			Theme:    theme,
		})
		if err != nil {
			s.recordTelemetry(ctx, "dashboard.widget.provider_error", map[string]any{
				"definition_id": inst.DefinitionID,
				"widget_id":     inst.ID,
				"error":         err.Error(),
			})
			continue
		}
		metadata := cloneMap(enriched[i].Metadata)
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata["data"] = data
		enriched[i].Metadata = metadata
	}
	return enriched
}
