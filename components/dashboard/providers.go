package dashboard

import (
	"context"
	"errors"
	"fmt"
)

// DefaultProviders wires every overview widget to the demo datasets.
func DefaultProviders() map[string]Provider {
	return NewOverviewProviders(StaticOverviewRepository{}, DefaultPanelFeed())
}

// NewOverviewProviders wires every overview widget to repo and feed.
func NewOverviewProviders(repo OverviewRepository, feed PanelFeed, chartOptions ...EChartsProviderOption) map[string]Provider {
	return map[string]Provider{
		WidgetKPICards:          NewKPIProvider(repo),
		WidgetProjections:       NewSeriesChartProvider(repo.Projections, NewEChartsProvider(ChartBar, chartOptions...)),
		WidgetRevenue:           NewSeriesChartProvider(repo.Revenue, NewEChartsProvider(ChartLine, chartOptions...)),
		WidgetRevenueByLocation: NewLocationProvider(repo),
		WidgetTopProducts:       NewTopProductsProvider(repo),
		WidgetTotalSales:        NewTotalSalesProvider(repo, NewEChartsProvider(ChartDonut, chartOptions...)),
		WidgetNotifications:     NewPanelProvider(feed),
	}
}

// SeriesSource loads the dataset of a series chart.
type SeriesSource func(ctx context.Context) (Series, error)

// SeriesChartProvider feeds a Series into an EChartsProvider.
type SeriesChartProvider struct {
	source   SeriesSource
	renderer *EChartsProvider
}

// NewSeriesChartProvider builds a provider backed by source.
func NewSeriesChartProvider(source SeriesSource, renderer *EChartsProvider) Provider {
	if renderer == nil {
		renderer = NewEChartsProvider(ChartLine)
	}
	return &SeriesChartProvider{source: source, renderer: renderer}
}

// Fetch loads the series and renders it with the instance title, subtitle and theme.
func (p *SeriesChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, errors.New("dashboard: series chart provider requires a source")
	}
	series, err := p.source(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: load series for %s: %w", meta.Instance.DefinitionID, err)
	}
	cfg := meta.Instance.Configuration
	xAxis, data := series.chartConfig()

	temp := meta
	temp.Instance.Configuration = map[string]any{
		"title":    stringValue(cfg["title"], "Chart"),
		"subtitle": stringValue(cfg["subtitle"], ""),
		"theme":    stringValue(cfg["theme"], ""),
		"x_axis":   xAxis,
		"series":   data,
	}
	out, err := p.renderer.Fetch(ctx, temp)
	if err != nil {
		return nil, err
	}
	out["series_names"] = series.Names
	return out, nil
}
