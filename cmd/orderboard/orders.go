package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-orderboard/components/dashboard/queries"
	"github.com/goliatone/go-orderboard/components/orders"
	"github.com/goliatone/go-orderboard/components/orders/tui"
)

// queryFlags select the order list view state. They share the names of the page query string.
type queryFlags struct {
	Search   string   `short:"q" help:"Case-insensitive search over id, user, project, address, date and status."`
	Date     string   `default:"All" help:"Date bucket (All, Today, Yesterday, This Week, This Month, Older)."`
	Sort     string   `help:"Sort column (id, user, project, address, date, status)."`
	Dir      string   `default:"asc" enum:"asc,desc" help:"Sort direction."`
	Page     int      `default:"0" help:"Zero-based page index."`
	Size     int      `default:"10" help:"Rows per page (5, 10, 25)."`
	Selected []string `help:"Selected order ids."`
}

func (f queryFlags) state() (orders.ViewState, error) {
	values := url.Values{}
	values.Set("q", f.Search)
	values.Set("date", f.Date)
	values.Set("sort", f.Sort)
	values.Set("dir", f.Dir)
	values.Set("page", strconv.Itoa(f.Page))
	values.Set("size", strconv.Itoa(f.Size))
	if len(f.Selected) > 0 {
		values.Set("selected", strings.Join(f.Selected, ","))
	}
	return orders.ParseQuery(values)
}

type ordersCmd struct {
	Query  queryFlags `embed:""`
	Export string `type:"path" help:"Write every filtered and sorted row to this xlsx file instead of printing a page."`

	out io.Writer `kong:"-"`
}

func (c *ordersCmd) Run(ctx context.Context, logger *slog.Logger) error {
	state, err := c.Query.state()
	if err != nil {
		return err
	}
	store := orders.DefaultStore()
	if err := state.Validate(store); err != nil {
		return err
	}
	if c.Export != "" {
		rows := orders.Ordered(store, state)
		if err := writeExport(c.Export, rows); err != nil {
			return err
		}
		logger.Info("orders exported", "path", c.Export, "rows", len(rows))
		return nil
	}
	snap, err := queries.NewOrderPageQuery(store).Query(ctx, state)
	if err != nil {
		return err
	}
	renderOrders(output(c.out), store, state, snap)
	return nil
}

func writeExport(path string, rows []orders.Order) error {
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("orderboard: create %s: %w", path, err)
	}
	if err := orders.ExportXLSX(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func renderOrders(w io.Writer, store *orders.Store, state orders.ViewState, snap orders.Snapshot) {
	styles := tui.DefaultStyles()
	selection := state.Selection()

	headers := []string{""}
	for _, field := range orders.Fields() {
		header := strings.ToUpper(string(field))
		switch state.Sort.Indicator(field) {
		case "asc":
			header += " ↑"
		case "desc":
			header += " ↓"
		}
		headers = append(headers, header)
	}
	rows := make([][]string, 0, len(snap.Rows))
	for _, order := range snap.Rows {
		check := "[ ]"
		if selection.IsSelected(order.ID) {
			check = "[x]"
		}
		rows = append(rows, []string{check, order.ID, order.User.Name, order.Project, order.Address, order.Date, order.Status.Label()})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			if col == len(headers)-1 && row >= 0 && row < len(snap.Rows) {
				return lipgloss.NewStyle().Padding(0, 1).Inherit(tui.StatusStyle(snap.Rows[row].Status.Color()))
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	pages := max(snap.PageCount, 1)
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Page %d of %d · %s of %s orders · %d selected\n",
		min(state.Page+1, pages), pages,
		humanize.Comma(int64(snap.TotalFiltered)), humanize.Comma(int64(store.Len())),
		len(snap.SelectedIDs))
}
