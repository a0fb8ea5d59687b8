package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestVersion is the only layout manifest format version understood.
const ManifestVersion = "1"

// LayoutManifest describes an overview layout in YAML: extra widget definitions and the
// placements seeded at startup.
type LayoutManifest struct {
	Version    string             `yaml:"version"`
	Theme      string             `yaml:"theme,omitempty"`
	Widgets    []WidgetDefinition `yaml:"widgets,omitempty"`
	Placements []AddWidgetRequest `yaml:"placements"`
	Source     string             `yaml:"-"`
}

// ReadLayoutManifest loads a manifest file from disk.
func ReadLayoutManifest(path string) (*LayoutManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeLayoutManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeLayoutManifest reads a manifest from any reader. Unknown fields are rejected.
func DecodeLayoutManifest(r io.Reader) (*LayoutManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc LayoutManifest
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = ManifestVersion
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks version, widget codes and that every placement names an area and a definition.
func (doc *LayoutManifest) Validate() error {
	if doc.Version != ManifestVersion {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		if widget.Code == "" {
			return fmt.Errorf("dashboard: manifest widget at index %d is missing code", idx)
		}
		if widget.Name == "" {
			return fmt.Errorf("dashboard: manifest widget %s missing name", widget.Code)
		}
		if _, exists := seen[widget.Code]; exists {
			return fmt.Errorf("dashboard: manifest duplicates widget code %s", widget.Code)
		}
		seen[widget.Code] = struct{}{}
	}
	for idx, placement := range doc.Placements {
		if placement.AreaCode == "" {
			return fmt.Errorf("dashboard: placement %d: %w", idx, ErrAreaRequired)
		}
		if placement.DefinitionID == "" {
			return fmt.Errorf("dashboard: placement %d: %w", idx, ErrDefinitionRequired)
		}
	}
	return nil
}

// Apply registers the manifest widgets with the service registry and bootstraps the layout.
// An empty placement list seeds the stock overview.
func (doc *LayoutManifest) Apply(ctx context.Context, service *Service) error {
	if service == nil {
		return errors.New("dashboard: service is required to apply a manifest")
	}
	for _, def := range doc.Widgets {
		if err := service.Registry().RegisterDefinition(def); err != nil {
			return fmt.Errorf("dashboard: register widget %s from %s: %w", def.Code, doc.Source, err)
		}
		if v, ok := service.opts.ConfigValidator.(*JSONSchemaValidator); ok {
			v.Forget(def.Code)
		}
	}
	return Bootstrap(ctx, service, doc.Placements)
}
