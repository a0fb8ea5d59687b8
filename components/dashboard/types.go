package dashboard

import "context"

// WidgetStore persists areas, definitions and widget placements for the overview page.
// Implementations must be safe for concurrent use.
type WidgetStore interface {
	EnsureArea(ctx context.Context, def WidgetAreaDefinition) (bool, error)
	EnsureDefinition(ctx context.Context, def WidgetDefinition) (bool, error)
	CreateInstance(ctx context.Context, input CreateWidgetInstanceInput) (WidgetInstance, error)
	AssignInstance(ctx context.Context, input AssignWidgetInput) error
	ReorderArea(ctx context.Context, input ReorderAreaInput) error
	ResolveArea(ctx context.Context, input ResolveAreaInput) (ResolvedArea, error)
}

// ProviderRegistry stores widget definitions and the providers that feed them.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// WidgetAreaDefinition models a region of the overview page (main grid, side panel).
type WidgetAreaDefinition struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// WidgetDefinition describes a widget type and the JSON schema of its configuration.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
}

// WidgetInstance is a configured widget placed in an area.
type WidgetInstance struct {
	ID            string         `json:"id"`
	DefinitionID  string         `json:"definition"`
	AreaCode      string         `json:"area"`
	Configuration map[string]any `json:"config,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// CreateWidgetInstanceInput configures new instances.
type CreateWidgetInstanceInput struct {
	DefinitionID  string
	Configuration map[string]any
	Metadata      map[string]any
}

// AssignWidgetInput places an instance in an area. A nil Position appends.
type AssignWidgetInput struct {
	AreaCode   string
	InstanceID string
	Position   *int
}

// ReorderAreaInput is the new ordering for widgets within an area.
type ReorderAreaInput struct {
	AreaCode  string
	WidgetIDs []string
}

// ResolveAreaInput requests the widgets of one area.
type ResolveAreaInput struct {
	AreaCode string
	Locale   string
}

// ResolvedArea is the ordered list of widgets in an area.
type ResolvedArea struct {
	AreaCode string           `json:"area"`
	Widgets  []WidgetInstance `json:"widgets"`
}

// ViewerContext carries the presentation preferences of the current request.
type ViewerContext struct {
	UserID string `json:"user_id,omitempty"`
	Locale string `json:"locale,omitempty"`
	Theme  string `json:"theme,omitempty"`
	Path   string `json:"path,omitempty"`
}

// Layout is the resolved widget list per area.
type Layout struct {
	Areas map[string][]WidgetInstance `json:"areas"`
}
