package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// MemoryWidgetStore keeps the overview layout in process memory.
type MemoryWidgetStore struct {
	mu           sync.Mutex
	areas        map[string]WidgetAreaDefinition
	definitions  map[string]WidgetDefinition
	instances    map[string]WidgetInstance
	assignments  map[string][]string
	nextInstance int
}

// NewMemoryWidgetStore builds an empty store.
func NewMemoryWidgetStore() *MemoryWidgetStore {
	return &MemoryWidgetStore{
		areas:       map[string]WidgetAreaDefinition{},
		definitions: map[string]WidgetDefinition{},
		instances:   map[string]WidgetInstance{},
		assignments: map[string][]string{},
	}
}

var _ WidgetStore = (*MemoryWidgetStore)(nil)

// EnsureArea stores def and reports whether it was new.
func (s *MemoryWidgetStore) EnsureArea(_ context.Context, def WidgetAreaDefinition) (bool, error) {
	if def.Code == "" {
		return false, ErrAreaRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.areas[def.Code]
	s.areas[def.Code] = def
	return !exists, nil
}

// EnsureDefinition stores def and reports whether it was new.
func (s *MemoryWidgetStore) EnsureDefinition(_ context.Context, def WidgetDefinition) (bool, error) {
	if def.Code == "" {
		return false, ErrDefinitionCodeRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.definitions[def.Code]
	s.definitions[def.Code] = def
	return !exists, nil
}

// CreateInstance stores a new unassigned instance.
func (s *MemoryWidgetStore) CreateInstance(_ context.Context, input CreateWidgetInstanceInput) (WidgetInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.definitions[input.DefinitionID]; !ok {
		return WidgetInstance{}, fmt.Errorf("%w: %s", ErrDefinitionNotFound, input.DefinitionID)
	}
	s.nextInstance++
	instance := WidgetInstance{
		ID:            fmt.Sprintf("widget-%d", s.nextInstance),
		DefinitionID:  input.DefinitionID,
		Configuration: cloneMap(input.Configuration),
		Metadata:      cloneMap(input.Metadata),
	}
	s.instances[instance.ID] = instance
	return instance, nil
}

// AssignInstance inserts the instance into the area at Position, or appends it.
func (s *MemoryWidgetStore) AssignInstance(_ context.Context, input AssignWidgetInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.areas[input.AreaCode]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownArea, input.AreaCode)
	}
	if _, ok := s.instances[input.InstanceID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWidget, input.InstanceID)
	}
	order := s.assignments[input.AreaCode]
	if input.Position != nil && *input.Position >= 0 && *input.Position <= len(order) {
		idx := *input.Position
		order = append(order[:idx], append([]string{input.InstanceID}, order[idx:]...)...)
	} else {
		order = append(order, input.InstanceID)
	}
	s.assignments[input.AreaCode] = order
	return nil
}

// ReorderArea moves the listed widgets to the front in the given order. Unlisted widgets keep
// their relative order after them; unknown ids are ignored.
func (s *MemoryWidgetStore) ReorderArea(_ context.Context, input ReorderAreaInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.areas[input.AreaCode]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownArea, input.AreaCode)
	}
	s.assignments[input.AreaCode] = applyOrderOverride(s.assignments[input.AreaCode], input.WidgetIDs)
	return nil
}

// ResolveArea returns copies of the widgets assigned to the area, in order.
func (s *MemoryWidgetStore) ResolveArea(_ context.Context, input ResolveAreaInput) (ResolvedArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.assignments[input.AreaCode]
	widgets := make([]WidgetInstance, 0, len(ids))
	for _, id := range ids {
		if inst, ok := s.instances[id]; ok {
			inst.AreaCode = input.AreaCode
			inst.Configuration = cloneMap(inst.Configuration)
			inst.Metadata = cloneMap(inst.Metadata)
			widgets = append(widgets, inst)
		}
	}
	return ResolvedArea{AreaCode: input.AreaCode, Widgets: widgets}, nil
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
