package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	dashboard "github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/dashboard/queries"
	"github.com/goliatone/go-orderboard/components/metrics"
	"github.com/goliatone/go-orderboard/components/orders"
	"github.com/goliatone/go-orderboard/components/orders/tui"
	"github.com/goliatone/go-orderboard/pkg/analytics"
)

type metricsCmd struct {
	Query   queryFlags `embed:""`
	Dataset string     `type:"path" help:"Overview dataset YAML. Defaults to the built-in sales and location data."`
	Format  string     `default:"text" enum:"text,json" help:"Output format (text, json)."`

	out io.Writer `kong:"-"`
}

type metricsReport struct {
	SalesTotal float64                 `json:"sales_total"`
	Shares     []metrics.Share         `json:"shares"`
	Scales     []metrics.Scale         `json:"scales"`
	Statuses   queries.StatusBreakdown `json:"statuses"`
}

func (c *metricsCmd) Run(ctx context.Context) error {
	state, err := c.Query.state()
	if err != nil {
		return err
	}
	var repo dashboard.OverviewRepository = dashboard.StaticOverviewRepository{}
	if c.Dataset != "" {
		repo = analytics.NewOverviewRepository(analytics.FileSource{Path: c.Dataset}, nil)
	}
	report, err := buildReport(ctx, repo, orders.DefaultStore(), state)
	if err != nil {
		return err
	}
	w := output(c.out)
	if c.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	renderReport(w, report)
	return nil
}

func buildReport(ctx context.Context, repo dashboard.OverviewRepository, store *orders.Store, state orders.ViewState) (metricsReport, error) {
	sales, err := repo.Sales(ctx)
	if err != nil {
		return metricsReport{}, fmt.Errorf("orderboard: load sales: %w", err)
	}
	locations, err := repo.Locations(ctx)
	if err != nil {
		return metricsReport{}, fmt.Errorf("orderboard: load locations: %w", err)
	}
	statuses, err := queries.NewStatusBreakdownQuery(store).Query(ctx, state)
	if err != nil {
		return metricsReport{}, err
	}
	return metricsReport{
		SalesTotal: metrics.SalesTotal(sales),
		Shares:     metrics.Shares(sales),
		Scales:     metrics.Scales(locations),
		Statuses:   statuses,
	}, nil
}

func renderReport(w io.Writer, report metricsReport) {
	styles := tui.DefaultStyles()
	cell := lipgloss.NewStyle().Padding(0, 1)
	newTable := func(headers ...string) *table.Table {
		return table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(styles.Border)).
			Headers(headers...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return styles.Header
				}
				return cell
			})
	}

	shares := newTable("SEGMENT", "VALUE", "SHARE")
	for _, share := range report.Shares {
		shares.Row(share.Name, humanize.CommafWithDigits(share.Value, 2), fmt.Sprintf("%.1f%%", share.Percent))
	}
	fmt.Fprintln(w, styles.Title.Render("Total sales "+humanize.CommafWithDigits(report.SalesTotal, 2)))
	fmt.Fprintln(w, shares.Render())

	scales := newTable("LOCATION", "REVENUE", "SCALE")
	for _, scale := range report.Scales {
		scales.Row(scale.Name, fmt.Sprintf("%sK", humanize.Ftoa(scale.Revenue)), bar(scale.Width))
	}
	fmt.Fprintln(w, styles.Title.Render("Revenue by location"))
	fmt.Fprintln(w, scales.Render())

	statuses := newTable("STATUS", "ORDERS", "SHARE", "SCALE")
	for _, status := range report.Statuses.Statuses {
		statuses.Row(
			tui.StatusStyle(status.Color).Render(status.Status.Label()),
			humanize.Comma(int64(status.Count)),
			fmt.Sprintf("%.1f%%", status.Percent),
			bar(status.Scale),
		)
	}
	fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("Orders by status (%s filtered)", humanize.Comma(int64(report.Statuses.Total)))))
	fmt.Fprintln(w, statuses.Render())
}

// bar draws a scale in [0,100] as a 20 cell bar.
func bar(scale float64) string {
	filled := int(scale/5 + 0.5)
	filled = min(max(filled, 0), 20)
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled) + fmt.Sprintf(" %.0f", scale)
}
