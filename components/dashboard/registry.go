package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrDefinitionCodeRequired = errors.New("dashboard: widget definition code is required")
	ErrDefinitionNotFound     = errors.New("dashboard: widget definition not found")
	ErrNilProvider            = errors.New("dashboard: provider cannot be nil")
)

// WidgetHook lets packages register widgets or providers against new registries.
type WidgetHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []WidgetHook
)

// RegisterWidgetHook registers a hook executed against every new registry.
func RegisterWidgetHook(h WidgetHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements ProviderRegistry.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]WidgetDefinition
	providers   map[string]Provider
}

// NewRegistry builds a registry holding the default overview widgets and applies global hooks.
func NewRegistry() *Registry {
	return NewRegistryWithProviders(DefaultProviders())
}

// NewRegistryWithProviders builds a registry holding the default overview widget definitions
// backed by providers, then applies global hooks. Definitions without a provider render no data.
func NewRegistryWithProviders(providers map[string]Provider) *Registry {
	reg := NewEmptyRegistry()
	reg.registerDefaults(providers)
	_ = reg.ApplyHooks()
	return reg
}

// NewEmptyRegistry builds a registry with no definitions.
func NewEmptyRegistry() *Registry {
	return &Registry{
		definitions: map[string]WidgetDefinition{},
		providers:   map[string]Provider{},
	}
}

func (r *Registry) registerDefaults(providers map[string]Provider) {
	for _, def := range DefaultWidgetDefinitions() {
		_ = r.RegisterDefinition(def)
		if provider, ok := providers[def.Code]; ok {
			_ = r.RegisterProvider(def.Code, provider)
		}
	}
}

// ApplyHooks executes registered widget hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores widget metadata, replacing any previous definition with the same code.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if def.Code == "" {
		return ErrDefinitionCodeRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Code] = def
	return nil
}

// RegisterProvider associates a provider with a registered definition.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return ErrDefinitionCodeRequired
	}
	if provider == nil {
		return ErrNilProvider
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("%w: %s", ErrDefinitionNotFound, code)
	}
	r.providers[code] = provider
	return nil
}

// Definition fetches a widget definition by code.
func (r *Registry) Definition(code string) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Provider fetches a widget provider by code.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// Definitions returns all registered definitions ordered by code.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })
	return defs
}
