package dashboard

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLayoutManifest(t *testing.T) {
	doc, err := ReadLayoutManifest("testdata/layout.yaml")
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, doc.Version)
	assert.Equal(t, ThemeDark, doc.Theme)
	assert.Equal(t, "testdata/layout.yaml", doc.Source)
	require.Len(t, doc.Widgets, 1)
	require.Len(t, doc.Placements, 3)
	assert.Equal(t, AreaPanel, doc.Placements[2].AreaCode)
}

func TestLayoutManifestApply(t *testing.T) {
	doc, err := ReadLayoutManifest("testdata/layout.yaml")
	require.NoError(t, err)
	service := NewService(Options{})
	ctx := context.Background()
	require.NoError(t, doc.Apply(ctx, service))

	layout, err := service.ConfigureLayout(ctx, ViewerContext{Theme: doc.Theme})
	require.NoError(t, err)
	require.Len(t, layout.Areas[AreaMain], 2)
	require.Len(t, layout.Areas[AreaPanel], 1)

	notes := layout.Areas[AreaPanel][0]
	assert.Equal(t, "orderboard.widget.shipping_notes", notes.DefinitionID)
	assert.Nil(t, notes.Metadata, "definitions without a provider carry no data")

	products := layout.Areas[AreaMain][1].Metadata["data"].(WidgetData)
	assert.Len(t, products["products"], 3)
}

func TestDecodeLayoutManifestErrors(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"unknown field": "version: \"1\"\nlayout: []\n",
		"version":       "version: \"2\"\n",
		"missing code":  "widgets:\n  - name: X\n",
		"missing name":  "widgets:\n  - code: x\n",
		"duplicate":     "widgets:\n  - {code: x, name: X}\n  - {code: x, name: Y}\n",
		"no area":       "placements:\n  - definition: orderboard.widget.kpi_cards\n",
		"no definition": "placements:\n  - area: orderboard.overview.main\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeLayoutManifest(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestDecodeLayoutManifestDefaultsVersion(t *testing.T) {
	doc, err := DecodeLayoutManifest(strings.NewReader("placements: []\n"))
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, doc.Version)
}

func TestLayoutManifestApplyRejectsInvalidConfig(t *testing.T) {
	doc, err := DecodeLayoutManifest(strings.NewReader(
		"placements:\n  - definition: orderboard.widget.top_products\n    area: orderboard.overview.main\n    config: {limit: 500}\n"))
	require.NoError(t, err)
	err = doc.Apply(context.Background(), NewService(Options{}))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestReadLayoutManifestMissingFile(t *testing.T) {
	_, err := ReadLayoutManifest("testdata/missing.yaml")
	assert.Error(t, err)
}
