// Package analytics feeds the overview widgets from datasets kept outside the binary.
package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/metrics"
)

// Dataset holds every overview dataset. Empty sections fall back to the built-in data.
type Dataset struct {
	KPIs        []dashboard.KPI     `yaml:"kpis"`
	Projections dashboard.Series    `yaml:"projections"`
	Revenue     dashboard.Series    `yaml:"revenue"`
	Locations   []metrics.Location  `yaml:"locations"`
	Sales       []metrics.Segment   `yaml:"sales"`
	Products    []dashboard.Product `yaml:"products"`
}

// Source loads a Dataset.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context) (Dataset, error)

func (f SourceFunc) Load(ctx context.Context) (Dataset, error) {
	return f(ctx)
}
