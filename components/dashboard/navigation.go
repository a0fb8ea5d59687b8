package dashboard

import "strings"

// MenuItem is a sidebar entry. Only navigable items link anywhere.
type MenuItem struct {
	Label     string `json:"label"`
	Path      string `json:"path"`
	Icon      string `json:"icon"`
	Navigable bool   `json:"navigable"`
	Active    bool   `json:"active"`
}

// MenuSection groups sidebar entries under a heading.
type MenuSection struct {
	Title      string     `json:"title"`
	Expandable bool       `json:"expandable"`
	Items      []MenuItem `json:"items"`
}

// Navigation is the sidebar menu.
type Navigation struct {
	Sections  []MenuSection `json:"sections"`
	Collapsed bool          `json:"collapsed"`
}

const (
	RouteOverview = "/"
	RouteOrders   = "/orders"
)

// DefaultNavigation returns the sidebar menu. Overview and Order List are the only navigable entries.
func DefaultNavigation() Navigation {
	return Navigation{Sections: []MenuSection{
		{Title: "Favorites", Items: []MenuItem{
			{Label: "Overview", Path: RouteOverview, Icon: "star", Navigable: true},
			{Label: "Projects", Path: "/projects", Icon: "folder"},
		}},
		{Title: "Recently", Items: []MenuItem{
			{Label: "Recent Activity", Path: "/recent", Icon: "history"},
		}},
		{Title: "Dashboards", Items: []MenuItem{
			{Label: "Default", Path: "/default", Icon: "dashboard"},
			{Label: "eCommerce", Path: "/ecommerce", Icon: "shopping-cart"},
			{Label: "Order List", Path: RouteOrders, Icon: "description", Navigable: true},
		}},
		{Title: "Pages", Items: []MenuItem{
			{Label: "User Profile", Path: "/profile", Icon: "person"},
			{Label: "Projects", Path: "/projects", Icon: "folder"},
			{Label: "Campaigns", Path: "/campaigns", Icon: "campaign"},
			{Label: "Documents", Path: "/documents", Icon: "description"},
			{Label: "Followers", Path: "/followers", Icon: "people"},
		}},
		{Title: "Account", Expandable: true},
		{Title: "Corporate", Expandable: true},
		{Title: "Blog", Expandable: true},
		{Title: "Social", Expandable: true},
	}}
}

// Resolve returns a copy of the menu with the item whose path equals current marked active.
// The base path prefix is stripped from current before matching.
func (n Navigation) Resolve(basePath, current string) Navigation {
	current = relativePath(basePath, current)
	out := Navigation{Collapsed: n.Collapsed, Sections: make([]MenuSection, len(n.Sections))}
	for i, section := range n.Sections {
		section.Items = append([]MenuItem{}, section.Items...)
		for j := range section.Items {
			section.Items[j].Active = section.Items[j].Path == current
		}
		out.Sections[i] = section
	}
	return out
}

// Routes lists the distinct navigable paths in menu order.
func (n Navigation) Routes() []string {
	var out []string
	seen := map[string]bool{}
	for _, section := range n.Sections {
		for _, item := range section.Items {
			if item.Navigable && !seen[item.Path] {
				seen[item.Path] = true
				out = append(out, item.Path)
			}
		}
	}
	return out
}

// Active returns the active item, if any.
func (n Navigation) Active() (MenuItem, bool) {
	for _, section := range n.Sections {
		for _, item := range section.Items {
			if item.Active {
				return item, true
			}
		}
	}
	return MenuItem{}, false
}

func relativePath(basePath, current string) string {
	base := strings.TrimRight(basePath, "/")
	if base != "" && strings.HasPrefix(current, base) {
		current = strings.TrimPrefix(current, base)
	}
	if current == "" {
		return "/"
	}
	if len(current) > 1 {
		current = strings.TrimRight(current, "/")
	}
	return current
}

// JoinPath joins a base path and a route, keeping a single slash between them.
func JoinPath(basePath, route string) string {
	base := strings.TrimRight(basePath, "/")
	if route == "" || route == "/" {
		if base == "" {
			return "/"
		}
		return base + "/"
	}
	return base + "/" + strings.TrimLeft(route, "/")
}
