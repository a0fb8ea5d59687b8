package dashboard

import (
	"context"
	"fmt"
	"slices"
)

// PanelItem is a notification or activity line in the side panel.
type PanelItem struct {
	Text string `json:"text"`
	Time string `json:"time"`
	Kind string `json:"kind,omitempty"`
}

// Contact is a person listed in the side panel.
type Contact struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Online bool   `json:"online"`
}

// PanelFeed serves the side panel sections.
type PanelFeed interface {
	Notifications(ctx context.Context, limit int) ([]PanelItem, error)
	Activities(ctx context.Context, limit int) ([]PanelItem, error)
	Contacts(ctx context.Context, limit int) ([]Contact, error)
}

// StaticPanelFeed returns fixed entries.
type StaticPanelFeed struct {
	NotificationItems []PanelItem
	ActivityItems     []PanelItem
	ContactItems      []Contact
}

func (f StaticPanelFeed) Notifications(_ context.Context, limit int) ([]PanelItem, error) {
	return head(f.NotificationItems, limit), nil
}

func (f StaticPanelFeed) Activities(_ context.Context, limit int) ([]PanelItem, error) {
	return head(f.ActivityItems, limit), nil
}

func (f StaticPanelFeed) Contacts(_ context.Context, limit int) ([]Contact, error) {
	return head(f.ContactItems, limit), nil
}

func head[T any](items []T, limit int) []T {
	if limit <= 0 || limit >= len(items) {
		return slices.Clone(items)
	}
	return slices.Clone(items[:limit])
}

// DefaultPanelFeed provides the demo side panel.
func DefaultPanelFeed() PanelFeed {
	return StaticPanelFeed{
		NotificationItems: []PanelItem{
			{Text: "You have a bug that needs...", Time: "Just now", Kind: "bug"},
			{Text: "New user registered", Time: "59 minutes ago", Kind: "user"},
			{Text: "You have a bug that needs...", Time: "12 hours ago", Kind: "bug"},
			{Text: "Andi Lane subscribed to you", Time: "Today, 11:59 AM", Kind: "subscription"},
		},
		ActivityItems: []PanelItem{
			{Text: "You have a bug that needs...", Time: "Just now"},
			{Text: "Released a new version", Time: "59 minutes ago"},
			{Text: "Submitted a bug", Time: "12 hours ago"},
			{Text: "Modified A data in Page X", Time: "Today, 11:59 AM"},
			{Text: "Deleted a page in Project X", Time: "Feb 2, 2023"},
		},
		ContactItems: []Contact{
			{Name: "Natali Craig", Avatar: "NC", Online: true},
			{Name: "Drew Cano", Avatar: "DC", Online: true},
			{Name: "Orlando Diggs", Avatar: "OD", Online: true},
			{Name: "Andi Lane", Avatar: "AL", Online: true},
			{Name: "Kate Morrison", Avatar: "KM", Online: true},
			{Name: "Koray Okumus", Avatar: "KO", Online: true},
			{Name: "Sarah Johnson", Avatar: "SJ", Online: false},
			{Name: "Mike Chen", Avatar: "MC", Online: true},
			{Name: "Emma Wilson", Avatar: "EW", Online: false},
			{Name: "Alex Rodriguez", Avatar: "AR", Online: true},
		},
	}
}

var panelSections = []string{"notifications", "activities", "contacts"}

// NewPanelProvider renders the configured side panel sections.
func NewPanelProvider(feed PanelFeed) Provider {
	if feed == nil {
		feed = DefaultPanelFeed()
	}
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		cfg := meta.Instance.Configuration
		limit := intValue(cfg["limit"], 0)
		sections := stringSliceValue(cfg["sections"])
		if len(sections) == 0 {
			sections = panelSections
		}
		data := WidgetData{"sections": sections}
		for _, section := range sections {
			var (
				items any
				err   error
			)
			switch section {
			case "notifications":
				items, err = feed.Notifications(ctx, limit)
			case "activities":
				items, err = feed.Activities(ctx, limit)
			case "contacts":
				items, err = feed.Contacts(ctx, limit)
			default:
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("dashboard: load %s: %w", section, err)
			}
			data[section] = items
		}
		return data, nil
	})
}
