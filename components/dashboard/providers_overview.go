package dashboard

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-orderboard/components/metrics"
)

// FormatKPIValue renders a KPI value for its unit: 3,781 / $695 / 30.1%.
func FormatKPIValue(k KPI) string {
	switch k.Unit {
	case UnitCurrency:
		return "$" + humanize.Comma(int64(math.Round(k.Value)))
	case UnitPercent:
		return fmt.Sprintf("%.1f%%", k.Value)
	default:
		return humanize.Comma(int64(math.Round(k.Value)))
	}
}

// FormatChange renders a signed percentage change: +11.01%, -0.03%.
func FormatChange(change float64) string {
	return fmt.Sprintf("%+.2f%%", change)
}

// Trend is "up" for a non-negative change and "down" otherwise.
func Trend(change float64) string {
	if change < 0 {
		return "down"
	}
	return "up"
}

// FormatAmount renders a money amount with thousands separators and two decimals.
func FormatAmount(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// NewKPIProvider renders the KPI cards, optionally restricted to configured metrics.
func NewKPIProvider(repo OverviewRepository) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		kpis, err := repo.KPIs(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: load kpis: %w", err)
		}
		wanted := stringSliceValue(meta.Instance.Configuration["metrics"])
		cards := make([]map[string]any, 0, len(kpis))
		for _, k := range kpis {
			if len(wanted) > 0 && !slices.Contains(wanted, k.Key) {
				continue
			}
			cards = append(cards, map[string]any{
				"key":    k.Key,
				"title":  k.Title,
				"value":  FormatKPIValue(k),
				"change": FormatChange(k.Change),
				"trend":  Trend(k.Change),
			})
		}
		return WidgetData{
			"title": stringValue(meta.Instance.Configuration["title"], ""),
			"cards": cards,
		}, nil
	})
}

// NewLocationProvider renders revenue per city with bar widths relative to the top city.
func NewLocationProvider(repo OverviewRepository) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		locations, err := repo.Locations(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: load locations: %w", err)
		}
		scales := metrics.Scales(locations)
		if limit := intValue(meta.Instance.Configuration["limit"], 0); limit > 0 && limit < len(scales) {
			scales = scales[:limit]
		}
		rows := make([]map[string]any, len(scales))
		for i, s := range scales {
			rows[i] = map[string]any{
				"name":      s.Name,
				"revenue":   fmt.Sprintf("%sK", humanize.Ftoa(s.Revenue)),
				"width":     metrics.Round(s.Width, 1),
				"longitude": s.Longitude,
				"latitude":  s.Latitude,
			}
		}
		return WidgetData{
			"title":     stringValue(meta.Instance.Configuration["title"], "Revenue by Location"),
			"locations": rows,
		}, nil
	})
}

// NewTopProductsProvider renders the best selling products table.
func NewTopProductsProvider(repo OverviewRepository) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		products, err := repo.Products(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: load products: %w", err)
		}
		if limit := intValue(meta.Instance.Configuration["limit"], 0); limit > 0 && limit < len(products) {
			products = products[:limit]
		}
		rows := make([]map[string]any, len(products))
		for i, p := range products {
			rows[i] = map[string]any{
				"name":     p.Name,
				"price":    FormatAmount(p.Price),
				"quantity": humanize.Comma(int64(p.Quantity)),
				"amount":   FormatAmount(p.Amount),
			}
		}
		return WidgetData{
			"title":    stringValue(meta.Instance.Configuration["title"], "Top Selling Products"),
			"products": rows,
		}, nil
	})
}

// TotalSalesProvider renders the sales share legend and, when enabled, a donut chart.
type TotalSalesProvider struct {
	repo     OverviewRepository
	renderer *EChartsProvider
}

// NewTotalSalesProvider builds the total sales provider.
func NewTotalSalesProvider(repo OverviewRepository, renderer *EChartsProvider) Provider {
	if renderer == nil {
		renderer = NewEChartsProvider(ChartDonut)
	}
	return &TotalSalesProvider{repo: repo, renderer: renderer}
}

// Fetch computes each segment's share of the total with metrics.Shares.
func (p *TotalSalesProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	segments, err := p.repo.Sales(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: load sales: %w", err)
	}
	cfg := meta.Instance.Configuration
	title := stringValue(cfg["title"], "Total Sales")
	shares := metrics.Shares(segments)

	legend := make([]map[string]any, len(shares))
	points := make([]map[string]any, len(shares))
	for i, s := range shares {
		legend[i] = map[string]any{
			"name":    s.Name,
			"value":   FormatAmount(s.Value),
			"percent": fmt.Sprintf("%.1f%%", s.Percent),
			"color":   s.Color,
		}
		points[i] = map[string]any{"name": s.Name, "value": s.Value, "color": s.Color}
	}
	data := WidgetData{
		"title":  title,
		"total":  FormatAmount(metrics.SalesTotal(segments)),
		"legend": legend,
	}
	if !boolValue(cfg["show_chart"], false) {
		return data, nil
	}

	temp := meta
	temp.Instance.Configuration = map[string]any{
		"title":  title,
		"theme":  stringValue(cfg["theme"], ""),
		"series": []map[string]any{{"name": title, "data": points}},
	}
	chart, err := p.renderer.Fetch(ctx, temp)
	if err != nil {
		return nil, err
	}
	data["chart_html"] = chart["chart_html"]
	data["theme"] = chart["theme"]
	return data, nil
}
