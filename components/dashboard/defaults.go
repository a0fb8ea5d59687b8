package dashboard

const (
	WidgetKPICards          = "orderboard.widget.kpi_cards"
	WidgetProjections       = "orderboard.widget.projections"
	WidgetRevenue           = "orderboard.widget.revenue"
	WidgetRevenueByLocation = "orderboard.widget.revenue_by_location"
	WidgetTopProducts       = "orderboard.widget.top_products"
	WidgetTotalSales        = "orderboard.widget.total_sales"
	WidgetNotifications     = "orderboard.widget.notifications"
)

var defaultAreaDefinitions = []WidgetAreaDefinition{
	{Code: AreaMain, Name: "Overview (Main)", Description: "KPI cards, charts and tables"},
	{Code: AreaPanel, Name: "Overview (Panel)", Description: "Notifications, activities and contacts"},
}

func titleSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"title": map[string]any{"type": "string", "minLength": 1},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

var limitProperty = map[string]any{"type": "integer", "minimum": 1, "maximum": 50}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        WidgetKPICards,
		Name:        "KPI Cards",
		Description: "Customers, orders, revenue and growth with their change",
		Category:    "stats",
		Schema: titleSchema(map[string]any{
			"metrics": map[string]any{
				"type":        "array",
				"uniqueItems": true,
				"items":       map[string]any{"type": "string", "enum": []string{"customers", "orders", "revenue", "growth"}},
			},
		}),
	},
	{
		Code:        WidgetProjections,
		Name:        "Projections vs Actuals",
		Description: "Monthly projections against actuals",
		Category:    "charts",
		Schema:      chartSchema(),
	},
	{
		Code:        WidgetRevenue,
		Name:        "Revenue",
		Description: "Current week against previous week",
		Category:    "charts",
		Schema:      chartSchema(),
	},
	{
		Code:        WidgetRevenueByLocation,
		Name:        "Revenue by Location",
		Description: "Revenue per city scaled against the top city",
		Category:    "stats",
		Schema:      titleSchema(map[string]any{"limit": limitProperty}),
	},
	{
		Code:        WidgetTopProducts,
		Name:        "Top Selling Products",
		Description: "Best selling products with price, quantity and amount",
		Category:    "tables",
		Schema:      titleSchema(map[string]any{"limit": limitProperty}),
	},
	{
		Code:        WidgetTotalSales,
		Name:        "Total Sales",
		Description: "Sales share per channel",
		Category:    "charts",
		Schema: titleSchema(map[string]any{
			"theme":      map[string]any{"type": "string"},
			"show_chart": map[string]any{"type": "boolean"},
		}),
	},
	{
		Code:        WidgetNotifications,
		Name:        "Notifications Panel",
		Description: "Notifications, activities and contacts",
		Category:    "activity",
		Schema: titleSchema(map[string]any{
			"limit": limitProperty,
			"sections": map[string]any{
				"type":        "array",
				"uniqueItems": true,
				"items":       map[string]any{"type": "string", "enum": []string{"notifications", "activities", "contacts"}},
			},
		}),
	},
}

func chartSchema() map[string]any {
	return titleSchema(map[string]any{
		"subtitle": map[string]any{"type": "string"},
		"theme":    map[string]any{"type": "string"},
	})
}

var defaultSeedWidgets = []AddWidgetRequest{
	{DefinitionID: WidgetKPICards, AreaCode: AreaMain},
	{DefinitionID: WidgetProjections, AreaCode: AreaMain, Configuration: map[string]any{"title": "Projections vs Actuals"}},
	{DefinitionID: WidgetRevenue, AreaCode: AreaMain, Configuration: map[string]any{"title": "Revenue"}},
	{DefinitionID: WidgetRevenueByLocation, AreaCode: AreaMain},
	{DefinitionID: WidgetTopProducts, AreaCode: AreaMain, Configuration: map[string]any{"limit": 5}},
	{DefinitionID: WidgetTotalSales, AreaCode: AreaMain, Configuration: map[string]any{"show_chart": true}},
	{DefinitionID: WidgetNotifications, AreaCode: AreaPanel},
}

// DefaultAreaDefinitions returns the overview areas.
func DefaultAreaDefinitions() []WidgetAreaDefinition {
	return append([]WidgetAreaDefinition{}, defaultAreaDefinitions...)
}

// DefaultWidgetDefinitions returns the overview widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	return append([]WidgetDefinition{}, defaultWidgetDefinitions...)
}

// DefaultSeedWidgets returns the placements of the stock overview page.
func DefaultSeedWidgets() []AddWidgetRequest {
	out := make([]AddWidgetRequest, len(defaultSeedWidgets))
	for i, req := range defaultSeedWidgets {
		req.Configuration = cloneMap(req.Configuration)
		out[i] = req
	}
	return out
}
