package dashboard

import (
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeSelection carries the resolved design tokens of a variant.
type ThemeSelection struct {
	Name       string            `json:"name"`
	Variant    string            `json:"variant"`
	Tokens     map[string]string `json:"tokens"`
	ChartTheme string            `json:"chart_theme"`
}

// ThemeCatalog holds the selectable variants and the fallback used for unknown names.
type ThemeCatalog struct {
	variants map[string]*ThemeSelection
	fallback string
}

// NewThemeCatalog builds a catalog; fallback must name one of selections.
func NewThemeCatalog(fallback string, selections ...*ThemeSelection) *ThemeCatalog {
	c := &ThemeCatalog{variants: make(map[string]*ThemeSelection, len(selections)), fallback: fallback}
	for _, s := range selections {
		if s == nil || s.Variant == "" {
			continue
		}
		c.variants[strings.ToLower(s.Variant)] = cloneThemeSelection(s)
	}
	return c
}

// DefaultThemeCatalog offers the light and dark variants, light by default.
func DefaultThemeCatalog() *ThemeCatalog {
	return NewThemeCatalog(ThemeLight,
		&ThemeSelection{
			Name:    "orderboard",
			Variant: ThemeLight,
			Tokens: map[string]string{
				"color-primary":    "#1976d2",
				"color-secondary":  "#dc004e",
				"color-background": "#f5f5f5",
				"color-surface":    "#ffffff",
				"color-card":       "#F7F9FB",
				"color-text":       "#333333",
				"color-muted":      "#666666",
				"color-border":     "#e0e0e0",
			},
			ChartTheme: string(types.ThemeWesteros),
		},
		&ThemeSelection{
			Name:    "orderboard",
			Variant: ThemeDark,
			Tokens: map[string]string{
				"color-primary":    "#1976d2",
				"color-secondary":  "#dc004e",
				"color-background": "#1a1a1a",
				"color-surface":    "#2d2d2d",
				"color-card":       "#2d2d2d",
				"color-text":       "#ffffff",
				"color-muted":      "#b0b0b0",
				"color-border":     "#404040",
			},
			ChartTheme: string(types.ThemeChalk),
		},
	)
}

// Select returns a copy of the named variant, or of the fallback when name is unknown.
func (c *ThemeCatalog) Select(name string) *ThemeSelection {
	if c == nil {
		return nil
	}
	if s, ok := c.variants[strings.ToLower(strings.TrimSpace(name))]; ok {
		return cloneThemeSelection(s)
	}
	return cloneThemeSelection(c.variants[c.fallback])
}

// Has reports whether name is a known variant.
func (c *ThemeCatalog) Has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.variants[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Variants lists the variant names in order.
func (c *ThemeCatalog) Variants() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.variants))
	for name := range c.variants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Toggle returns the other variant of a light/dark pair.
func Toggle(variant string) string {
	if strings.EqualFold(variant, ThemeDark) {
		return ThemeLight
	}
	return ThemeDark
}

// CSSVariables maps tokens to CSS custom property names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		if name := normalizeCSSVariable(key); name != "" {
			vars[name] = value
		}
	}
	return vars
}

// CSSVariablesInline renders the CSS variables as a style attribute value, sorted by name.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		if vars[key] == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(vars[key])
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

func cloneThemeSelection(selection *ThemeSelection) *ThemeSelection {
	if selection == nil {
		return nil
	}
	cloned := *selection
	if len(selection.Tokens) > 0 {
		cloned.Tokens = make(map[string]string, len(selection.Tokens))
		for key, value := range selection.Tokens {
			cloned.Tokens[key] = value
		}
	}
	return &cloned
}
