package dashboard

import (
	"context"

	"github.com/goliatone/go-orderboard/components/metrics"
)

// KPI is a headline number with its change against the previous period.
type KPI struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Change float64 `json:"change"`
}

const (
	UnitCount    = "count"
	UnitCurrency = "currency"
	UnitPercent  = "percent"
)

// SeriesPoint is one labelled x-axis position with a value per series.
type SeriesPoint struct {
	Label  string
	Values []float64
}

// Series is a chart dataset: series names plus points sharing their order.
type Series struct {
	Names  []string
	Points []SeriesPoint
}

// Product is a row of the top selling products table.
type Product struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// OverviewRepository serves the datasets behind the overview widgets.
type OverviewRepository interface {
	KPIs(ctx context.Context) ([]KPI, error)
	Projections(ctx context.Context) (Series, error)
	Revenue(ctx context.Context) (Series, error)
	Locations(ctx context.Context) ([]metrics.Location, error)
	Sales(ctx context.Context) ([]metrics.Segment, error)
	Products(ctx context.Context) ([]Product, error)
}

// StaticOverviewRepository serves the demo datasets.
type StaticOverviewRepository struct{}

var _ OverviewRepository = StaticOverviewRepository{}

func (StaticOverviewRepository) KPIs(context.Context) ([]KPI, error) {
	return []KPI{
		{Key: "customers", Title: "Customers", Value: 3781, Unit: UnitCount, Change: 11.01},
		{Key: "orders", Title: "Orders", Value: 1219, Unit: UnitCount, Change: -0.03},
		{Key: "revenue", Title: "Revenue", Value: 695, Unit: UnitCurrency, Change: 15.03},
		{Key: "growth", Title: "Growth", Value: 30.1, Unit: UnitPercent, Change: 6.08},
	}, nil
}

func (StaticOverviewRepository) Projections(context.Context) (Series, error) {
	return Series{
		Names: []string{"Projections", "Actuals"},
		Points: []SeriesPoint{
			{Label: "Jan", Values: []float64{20, 18}},
			{Label: "Feb", Values: []float64{25, 22}},
			{Label: "Mar", Values: []float64{30, 28}},
			{Label: "Apr", Values: []float64{28, 30}},
			{Label: "May", Values: []float64{35, 32}},
			{Label: "Jun", Values: []float64{40, 38}},
		},
	}, nil
}

func (StaticOverviewRepository) Revenue(context.Context) (Series, error) {
	return Series{
		Names: []string{"Current Week", "Previous Week"},
		Points: []SeriesPoint{
			{Label: "Jan", Values: []float64{15, 18}},
			{Label: "Feb", Values: []float64{18, 20}},
			{Label: "Mar", Values: []float64{22, 25}},
			{Label: "Apr", Values: []float64{25, 22}},
			{Label: "May", Values: []float64{28, 30}},
			{Label: "Jun", Values: []float64{30, 28}},
		},
	}, nil
}

func (StaticOverviewRepository) Locations(context.Context) ([]metrics.Location, error) {
	return metrics.DefaultLocations(), nil
}

func (StaticOverviewRepository) Sales(context.Context) ([]metrics.Segment, error) {
	return metrics.DefaultSales(), nil
}

func (StaticOverviewRepository) Products(context.Context) ([]Product, error) {
	return []Product{
		{Name: "ASOS Ridley High Waist", Price: 79.49, Quantity: 82, Amount: 6518.18},
		{Name: "Marco Lightweight Shirt", Price: 128.5, Quantity: 37, Amount: 4754.5},
		{Name: "Half Sleeve Shirt", Price: 39.99, Quantity: 64, Amount: 2559.36},
		{Name: "Lightweight Jacket", Price: 20, Quantity: 184, Amount: 3680},
		{Name: "Marco Shoes", Price: 79.49, Quantity: 64, Amount: 1965.81},
	}, nil
}

// chartConfig converts a Series into the configuration understood by EChartsProvider.
func (s Series) chartConfig() ([]string, []map[string]any) {
	xAxis := make([]string, len(s.Points))
	for i, p := range s.Points {
		xAxis[i] = p.Label
	}
	series := make([]map[string]any, len(s.Names))
	for i, name := range s.Names {
		data := make([]float64, len(s.Points))
		for j, p := range s.Points {
			if i < len(p.Values) {
				data[j] = p.Values[i]
			}
		}
		series[i] = map[string]any{"name": name, "data": data}
	}
	return xAxis, series
}
