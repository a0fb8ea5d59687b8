package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/metrics"
)

// NewOverviewRepository adapts a dataset source into the repository behind the overview widgets.
// Sections missing from the dataset are served by fallback, which defaults to the built-in data.
func NewOverviewRepository(source Source, fallback dashboard.OverviewRepository) dashboard.OverviewRepository {
	if fallback == nil {
		fallback = dashboard.StaticOverviewRepository{}
	}
	return &overviewRepository{source: source, fallback: fallback}
}

type overviewRepository struct {
	source   Source
	fallback dashboard.OverviewRepository
}

func (r *overviewRepository) load(ctx context.Context) (Dataset, error) {
	if r.source == nil {
		return Dataset{}, nil
	}
	return r.source.Load(ctx)
}

func (r *overviewRepository) KPIs(ctx context.Context) ([]dashboard.KPI, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(doc.KPIs) == 0 {
		return r.fallback.KPIs(ctx)
	}
	return doc.KPIs, nil
}

func (r *overviewRepository) Projections(ctx context.Context) (dashboard.Series, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return dashboard.Series{}, err
	}
	if len(doc.Projections.Points) == 0 {
		return r.fallback.Projections(ctx)
	}
	return doc.Projections, nil
}

func (r *overviewRepository) Revenue(ctx context.Context) (dashboard.Series, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return dashboard.Series{}, err
	}
	if len(doc.Revenue.Points) == 0 {
		return r.fallback.Revenue(ctx)
	}
	return doc.Revenue, nil
}

func (r *overviewRepository) Locations(ctx context.Context) ([]metrics.Location, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(doc.Locations) == 0 {
		return r.fallback.Locations(ctx)
	}
	return doc.Locations, nil
}

func (r *overviewRepository) Sales(ctx context.Context) ([]metrics.Segment, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(doc.Sales) == 0 {
		return r.fallback.Sales(ctx)
	}
	return doc.Sales, nil
}

func (r *overviewRepository) Products(ctx context.Context) ([]dashboard.Product, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(doc.Products) == 0 {
		return r.fallback.Products(ctx)
	}
	return doc.Products, nil
}
