package dashboard

import (
	"context"
	"errors"
	"io"

	"github.com/goliatone/go-orderboard/components/metrics"
	"github.com/goliatone/go-orderboard/components/orders"
)

const (
	DefaultOverviewTemplate = "overview.html"
	DefaultOrdersTemplate   = "orders.html"
)

// LayoutResolver resolves the overview layout for a viewer.
type LayoutResolver interface {
	ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error)
}

// ControllerOptions configures the page controller.
type ControllerOptions struct {
	Service          LayoutResolver
	Orders           *orders.Store
	Renderer         Renderer
	Themes           *ThemeCatalog
	Navigation       *Navigation
	BasePath         string
	Title            string
	OverviewTemplate string
	OrdersTemplate   string
}

// Controller builds page payloads and renders the overview and order list pages.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the dependencies into a controller, filling template names, theme catalog,
// navigation and order store defaults.
func NewController(opts ControllerOptions) *Controller {
	if opts.OverviewTemplate == "" {
		opts.OverviewTemplate = DefaultOverviewTemplate
	}
	if opts.OrdersTemplate == "" {
		opts.OrdersTemplate = DefaultOrdersTemplate
	}
	if opts.Themes == nil {
		opts.Themes = DefaultThemeCatalog()
	}
	if opts.Navigation == nil {
		nav := DefaultNavigation()
		opts.Navigation = &nav
	}
	if opts.Orders == nil {
		opts.Orders = orders.DefaultStore()
	}
	if opts.Title == "" {
		opts.Title = "Orderboard"
	}
	return &Controller{opts: opts}
}

// Orders returns the order store the list page reads from.
func (c *Controller) Orders() *orders.Store {
	return c.opts.Orders
}

// RenderOverview writes the overview page.
func (c *Controller) RenderOverview(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	payload, err := c.LayoutPayload(ctx, viewer)
	if err != nil {
		return err
	}
	return c.render(c.opts.OverviewTemplate, payload, out)
}

// RenderOrders writes the order list page for state.
func (c *Controller) RenderOrders(viewer ViewerContext, state orders.ViewState, out io.Writer) error {
	return c.render(c.opts.OrdersTemplate, c.OrdersPayload(viewer, state), out)
}

func (c *Controller) render(name string, payload map[string]any, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("dashboard: renderer is not configured")
	}
	_, err := c.opts.Renderer.Render(name, payload, out)
	return err
}

// LayoutPayload returns the overview template payload.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	if c.opts.Service == nil {
		return nil, errors.New("dashboard: layout resolver is not configured")
	}
	layout, err := c.opts.Service.ConfigureLayout(ctx, viewer)
	if err != nil {
		return nil, err
	}
	areas := make(map[string][]map[string]any, len(layout.Areas))
	for code, widgets := range layout.Areas {
		areas[code] = widgetsPayload(widgets)
	}
	payload := c.pagePayload(viewer, RouteOverview)
	payload["areas"] = areas
	payload["main"] = areas[AreaMain]
	payload["panel"] = areas[AreaPanel]
	return payload, nil
}

// OrdersPayload returns the order list template payload. Header, pager and row links carry the
// query string of the state that the corresponding click produces.
func (c *Controller) OrdersPayload(viewer ViewerContext, state orders.ViewState) map[string]any {
	store := c.opts.Orders
	snap := orders.Derive(store, state)
	selection := state.Selection()

	rows := make([]map[string]any, 0, len(snap.Rows))
	for _, order := range snap.Rows {
		rows = append(rows, map[string]any{
			"id":           order.ID,
			"user":         order.User.Name,
			"initials":     order.User.Initials(),
			"project":      order.Project,
			"address":      order.Address,
			"date":         order.Date,
			"status":       order.Status.Label(),
			"status_color": order.Status.Color(),
			"selected":     selection.IsSelected(order.ID),
			"toggle_href":  c.eventHref(state, orders.RowToggled(order.ID)),
		})
	}

	headers := make([]map[string]any, 0, len(orders.Fields()))
	for _, field := range orders.Fields() {
		headers = append(headers, map[string]any{
			"field":     string(field),
			"label":     fieldLabel(field),
			"indicator": state.Sort.Indicator(field),
			"href":      c.eventHref(state, orders.SortHeaderClicked(field)),
		})
	}

	pages := make([]map[string]any, 0, snap.PageCount)
	for i := 0; i < snap.PageCount; i++ {
		pages = append(pages, map[string]any{
			"index":   i,
			"number":  i + 1,
			"current": i == state.Page,
			"href":    c.eventHref(state, orders.PageChanged(i)),
		})
	}

	sizes := make([]map[string]any, 0, len(orders.PageSizes))
	for _, size := range orders.PageSizes {
		sizes = append(sizes, map[string]any{
			"size":    size,
			"current": size == state.PageSize,
			"href":    c.eventHref(state, orders.PageSizeChanged(size)),
		})
	}

	buckets := make([]map[string]any, 0, len(orders.DateBuckets()))
	for _, bucket := range orders.DateBuckets() {
		buckets = append(buckets, map[string]any{
			"value":   string(bucket),
			"current": bucket == state.Filter.Bucket || (state.Filter.Bucket == "" && bucket == orders.BucketAll),
		})
	}

	first, last := 0, 0
	if len(snap.Rows) > 0 {
		first = state.Page*state.PageSize + 1
		last = first + len(snap.Rows) - 1
	}

	payload := c.pagePayload(viewer, RouteOrders)
	payload["state"] = state
	payload["query"] = state.Query().Encode()
	payload["search"] = state.Filter.Search
	payload["rows"] = rows
	payload["headers"] = headers
	payload["pages"] = pages
	payload["page_sizes"] = sizes
	payload["date_buckets"] = buckets
	payload["total_filtered"] = snap.TotalFiltered
	payload["total"] = store.Len()
	payload["page_count"] = snap.PageCount
	payload["first"] = first
	payload["last"] = last
	payload["selected_count"] = len(snap.SelectedIDs)
	payload["selected_percent"] = metrics.PercentOfTotal(float64(len(snap.SelectedIDs)), float64(store.Len()))
	payload["indeterminate"] = snap.Indeterminate
	payload["all_selected"] = snap.AllSelected
	payload["select_all_href"] = c.eventHref(state, orders.SelectAllToggled(!snap.AllSelected))
	if state.Page > 0 {
		payload["prev_href"] = c.eventHref(state, orders.PageChanged(state.Page-1))
	}
	if state.Page+1 < snap.PageCount {
		payload["next_href"] = c.eventHref(state, orders.PageChanged(state.Page+1))
	}
	payload["export_href"] = JoinPath(c.opts.BasePath, RouteOrders) + "/export.xlsx?" + state.Query().Encode()
	return payload
}

func (c *Controller) pagePayload(viewer ViewerContext, route string) map[string]any {
	theme := c.opts.Themes.Select(viewer.Theme)
	current := viewer.Path
	if current == "" {
		current = JoinPath(c.opts.BasePath, route)
	}
	nav := c.opts.Navigation.Resolve(c.opts.BasePath, current)
	payload := map[string]any{
		"title":        c.opts.Title,
		"base_path":    c.opts.BasePath,
		"viewer":       viewer,
		"navigation":   nav,
		"overview_url": JoinPath(c.opts.BasePath, RouteOverview),
		"orders_url":   JoinPath(c.opts.BasePath, RouteOrders),
	}
	if active, ok := nav.Active(); ok {
		payload["page_title"] = active.Label
	}
	if theme != nil {
		payload["theme"] = theme
		payload["theme_css"] = theme.CSSVariablesInline()
		payload["theme_toggle"] = Toggle(theme.Variant)
	}
	return payload
}

// eventHref encodes the state produced by ev as a link to the order list. Events that would
// be rejected link to the current state.
func (c *Controller) eventHref(state orders.ViewState, ev orders.Event) string {
	next, err := state.Apply(c.opts.Orders, ev)
	if err != nil {
		next = state
	}
	href := JoinPath(c.opts.BasePath, RouteOrders)
	if query := next.Query().Encode(); query != "" {
		href += "?" + query
	}
	return href
}

func fieldLabel(field orders.Field) string {
	switch field {
	case orders.FieldID:
		return "Order ID"
	case orders.FieldUser:
		return "User"
	case orders.FieldProject:
		return "Project"
	case orders.FieldAddress:
		return "Address"
	case orders.FieldDate:
		return "Date"
	case orders.FieldStatus:
		return "Status"
	default:
		return string(field)
	}
}

func widgetsPayload(widgets []WidgetInstance) []map[string]any {
	out := make([]map[string]any, 0, len(widgets))
	for _, widget := range widgets {
		entry := map[string]any{
			"id":         widget.ID,
			"definition": widget.DefinitionID,
			"area":       widget.AreaCode,
			"config":     widget.Configuration,
		}
		if data, ok := widget.Metadata["data"]; ok {
			entry["data"] = data
		}
		out = append(out, entry)
	}
	return out
}
