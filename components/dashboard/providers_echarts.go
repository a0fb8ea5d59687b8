package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	ChartBar   = "bar"
	ChartLine  = "line"
	ChartDonut = "donut"

	defaultChartHeight = "250px"
)

var (
	ErrChartSeriesRequired = errors.New("dashboard: chart series is required")
	ErrUnsupportedChart    = errors.New("dashboard: unsupported chart type")
)

var sharedChartCache = NewChartCache(5 * time.Minute)

// EChartsProvider renders chart HTML from a widget configuration holding
// "title", "subtitle", "x_axis" and "series" ([{name, data}]).
type EChartsProvider struct {
	chartType  string
	cache      RenderCache
	theme      string
	assetsHost string
	height     string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache. A nil cache renders on every fetch.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets the theme used when neither the configuration nor the viewer theme picks one.
func WithChartTheme(theme string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.theme = theme
	}
}

// WithChartAssetsHost points the ECharts runtime at a CDN or self-hosted bucket.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = host
	}
}

// WithChartHeight overrides the canvas height.
func WithChartHeight(height string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.height = height
	}
}

// NewEChartsProvider builds a provider for bar, line or donut charts.
func NewEChartsProvider(chartType string, options ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType:  strings.ToLower(chartType),
		cache:      sharedChartCache,
		theme:      string(types.ThemeWesteros),
		assetsHost: DefaultEChartsAssetsHost(),
		height:     defaultChartHeight,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// ChartSeries is a set of values plotted for one legend entry.
type ChartSeries struct {
	Name   string
	Points []ChartPoint
}

// ChartPoint is an individual value, optionally labelled and colored.
type ChartPoint struct {
	Label string
	Value float64
	Color string
}

type chartInput struct {
	title    string
	subtitle string
	theme    string
	xAxis    []string
	series   []ChartSeries
}

// Fetch renders the configured chart.
func (p *EChartsProvider) Fetch(_ context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}
	in := chartInput{
		title:    stringValue(cfg["title"], "Chart"),
		subtitle: stringValue(cfg["subtitle"], ""),
		series:   parseChartSeries(cfg["series"]),
		xAxis:    stringSliceValue(cfg["x_axis"]),
		theme:    p.resolveTheme(meta),
	}
	if len(in.series) == 0 {
		return nil, ErrChartSeriesRequired
	}
	if len(in.xAxis) == 0 {
		in.xAxis = inferredAxisLabels(in.series)
	}
	if override := strings.TrimSpace(stringValue(cfg["theme"], "")); override != "" {
		in.theme = override
	}

	renderFn := func() (string, error) {
		return p.render(in)
	}
	var (
		html string
		err  error
	)
	if p.cache != nil {
		key := fmt.Sprintf("%s:%s:%s:%s:%s", meta.Instance.DefinitionID, meta.Instance.ID, p.chartType, in.theme, configHash(cfg))
		html, err = p.cache.GetOrRender(key, renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"chart_html": html,
		"chart_type": p.chartType,
		"title":      in.title,
		"subtitle":   in.subtitle,
		"theme":      in.theme,
	}, nil
}

func (p *EChartsProvider) render(in chartInput) (string, error) {
	switch p.chartType {
	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(p.globalChartOptions(in)...)
		bar.SetXAxis(in.xAxis)
		for _, s := range in.series {
			bar.AddSeries(s.Name, toBarData(s.Points))
		}
		return renderChart(bar)
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(p.globalChartOptions(in)...)
		line.SetXAxis(in.xAxis)
		for _, s := range in.series {
			line.AddSeries(s.Name, toLineData(s.Points))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case ChartDonut:
		pie := charts.NewPie()
		pie.SetGlobalOptions(p.globalChartOptions(in)...)
		for _, s := range in.series {
			pie.AddSeries(s.Name, toPieData(s.Points))
		}
		pie.SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{Radius: []string{"45%", "70%"}}))
		return renderChart(pie)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedChart, p.chartType)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *EChartsProvider) globalChartOptions(in chartInput) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  in.theme,
		Width:  "100%",
		Height: p.height,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: in.title, Subtitle: in.subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (p *EChartsProvider) resolveTheme(meta WidgetContext) string {
	if meta.Theme != nil && meta.Theme.ChartTheme != "" {
		return meta.Theme.ChartTheme
	}
	if p.theme != "" {
		return p.theme
	}
	return string(types.ThemeWesteros)
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: point.Value}
		if point.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: point.Color}
		}
	}
	return data
}

func parseChartSeries(v any) []ChartSeries {
	var items []map[string]any
	switch val := v.(type) {
	case []map[string]any:
		items = val
	case []any:
		for _, item := range val {
			if m, ok := item.(map[string]any); ok {
				items = append(items, m)
			}
		}
	default:
		return nil
	}
	out := make([]ChartSeries, 0, len(items))
	for _, item := range items {
		series := ChartSeries{
			Name:   stringValue(item["name"], "Series"),
			Points: parseChartPoints(item["data"]),
		}
		if len(series.Points) > 0 {
			out = append(out, series)
		}
	}
	return out
}

func parseChartPoints(v any) []ChartPoint {
	switch value := v.(type) {
	case []float64:
		points := make([]ChartPoint, len(value))
		for i, val := range value {
			points[i] = ChartPoint{Value: val}
		}
		return points
	case []int:
		points := make([]ChartPoint, len(value))
		for i, val := range value {
			points[i] = ChartPoint{Value: float64(val)}
		}
		return points
	case []map[string]any:
		points := make([]ChartPoint, 0, len(value))
		for _, item := range value {
			points = append(points, pointFromMap(item))
		}
		return points
	case []any:
		points := make([]ChartPoint, 0, len(value))
		for _, item := range value {
			if m, ok := item.(map[string]any); ok {
				points = append(points, pointFromMap(m))
				continue
			}
			points = append(points, ChartPoint{Value: float64Value(item)})
		}
		return points
	default:
		return nil
	}
}

func pointFromMap(m map[string]any) ChartPoint {
	return ChartPoint{
		Label: stringValue(m["name"], ""),
		Value: float64Value(m["value"]),
		Color: stringValue(m["color"], ""),
	}
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func float64Value(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return 0
}

func intValue(v any, fallback int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
	}
	return fallback
}

func boolValue(v any, fallback bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	default:
		return fallback
	}
}

func inferredAxisLabels(series []ChartSeries) []string {
	var candidate []string
	longest := 0
	for _, s := range series {
		if len(s.Points) <= longest {
			continue
		}
		longest = len(s.Points)
		candidate = make([]string, len(s.Points))
		for i, point := range s.Points {
			if point.Label != "" {
				candidate[i] = point.Label
			} else {
				candidate[i] = fmt.Sprintf("Item %d", i+1)
			}
		}
	}
	return candidate
}
