package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeCatalogSelect(t *testing.T) {
	catalog := DefaultThemeCatalog()
	assert.Equal(t, []string{ThemeDark, ThemeLight}, catalog.Variants())

	dark := catalog.Select(" Dark ")
	require.NotNil(t, dark)
	assert.Equal(t, ThemeDark, dark.Variant)
	assert.Equal(t, "#1a1a1a", dark.Tokens["color-background"])

	fallback := catalog.Select("sepia")
	require.NotNil(t, fallback)
	assert.Equal(t, ThemeLight, fallback.Variant)
	assert.False(t, catalog.Has("sepia"))
	assert.True(t, catalog.Has("LIGHT"))
}

func TestThemeCatalogSelectReturnsCopies(t *testing.T) {
	catalog := DefaultThemeCatalog()
	first := catalog.Select(ThemeLight)
	first.Tokens["color-background"] = "#000"
	assert.Equal(t, "#f5f5f5", catalog.Select(ThemeLight).Tokens["color-background"])
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeDark, Toggle(ThemeLight))
	assert.Equal(t, ThemeLight, Toggle(ThemeDark))
	assert.Equal(t, ThemeDark, Toggle(""))
}

func TestThemeCSSVariablesInline(t *testing.T) {
	theme := &ThemeSelection{Tokens: map[string]string{"color-text": "#333", "--color-border": "#e0e0e0", "empty": ""}}
	assert.Equal(t, "--color-border: #e0e0e0; --color-text: #333;", theme.CSSVariablesInline())
	assert.Empty(t, (*ThemeSelection)(nil).CSSVariablesInline())
}
