// Package tui is a terminal order browser built on the order list controller.
package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-orderboard/components/metrics"
	"github.com/goliatone/go-orderboard/components/orders"
)

// Mode is the input mode of the browser.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
)

const chrome = 9

var columnWidths = map[orders.Field]int{
	orders.FieldID:      9,
	orders.FieldUser:    16,
	orders.FieldProject: 18,
	orders.FieldAddress: 22,
	orders.FieldDate:    13,
	orders.FieldStatus:  12,
}

// Model is the bubbletea model of the order browser.
type Model struct {
	ctrl   *orders.Controller
	table  table.Model
	search textinput.Model
	styles Styles
	mode   Mode
	before string
	err    error
	width  int
}

// New mounts a browser over store with the default view state.
func New(store *orders.Store) Model {
	return NewWithState(store, orders.DefaultViewState())
}

// NewWithState mounts a browser starting from state.
func NewWithState(store *orders.Store, state orders.ViewState) Model {
	styles := DefaultStyles()

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(orders.DefaultPageSize+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = styles.Selected
	t.SetStyles(s)

	input := textinput.New()
	input.Placeholder = "Search orders..."
	input.Prompt = "/ "
	input.CharLimit = 64
	input.SetValue(state.Filter.Search)

	m := Model{
		ctrl:   orders.NewControllerWithState(store, state),
		table:  t,
		search: input,
		styles: styles,
		width:  100,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the current view state.
func (m Model) State() orders.ViewState {
	return m.ctrl.State()
}

// Snapshot returns the derived page.
func (m Model) Snapshot() orders.Snapshot {
	return m.ctrl.Snapshot()
}

// Mode returns the input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Err returns the error of the last rejected event, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(max(msg.Height-chrome, 3))
		return m, nil
	case tea.KeyMsg:
		if m.mode == ModeSearch {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeBrowse
		m.search.Blur()
		m.table.Focus()
		return m, nil
	case "esc":
		m.search.SetValue(m.before)
		m.ctrl.OnSearchChange(m.before)
		m.mode = ModeBrowse
		m.search.Blur()
		m.table.Focus()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.ctrl.State().Filter.Search {
		m.ctrl.OnSearchChange(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.ctrl.State()
	snap := m.ctrl.Snapshot()
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.mode = ModeSearch
		m.before = state.Filter.Search
		m.table.Blur()
		return m, m.search.Focus()
	case "d":
		m.err = m.ctrl.OnDateFilterChange(nextBucket(state.Filter.Bucket))
	case "1", "2", "3", "4", "5", "6":
		field := orders.Fields()[int(key[0]-'1')]
		m.err = m.ctrl.OnSortHeaderClick(field)
	case "h", "left":
		m.err = m.ctrl.OnPageChange(state.Page - 1)
	case "l", "right":
		if state.Page+1 < snap.PageCount {
			m.err = m.ctrl.OnPageChange(state.Page + 1)
		}
	case "s":
		m.err = m.ctrl.OnPageSizeChange(nextPageSize(state.PageSize))
	case " ", "space", "x":
		if row := m.table.Cursor(); row >= 0 && row < len(snap.Rows) {
			m.err = m.ctrl.OnRowToggle(snap.Rows[row].ID)
		}
	case "a":
		m.ctrl.OnSelectAllToggle(!snap.AllSelected)
		m.err = nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m *Model) refresh() {
	state := m.ctrl.State()
	snap := m.ctrl.Snapshot()
	selection := state.Selection()

	columns := []table.Column{{Title: "", Width: 3}}
	for i, field := range orders.Fields() {
		columns = append(columns, table.Column{
			Title: fmt.Sprintf("%d %s%s", i+1, columnTitle(field), arrow(state.Sort.Indicator(field))),
			Width: columnWidths[field],
		})
	}
	rows := make([]table.Row, 0, len(snap.Rows))
	for _, order := range snap.Rows {
		check := "[ ]"
		if selection.IsSelected(order.ID) {
			check = "[x]"
		}
		rows = append(rows, table.Row{
			check,
			order.ID,
			order.User.Name,
			order.Project,
			order.Address,
			order.Date,
			order.Status.Label(),
		})
	}
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	if cursor := m.table.Cursor(); cursor >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m Model) View() string {
	state := m.ctrl.State()
	snap := m.ctrl.Snapshot()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Order List"))
	b.WriteString("\n")

	search := m.search.View()
	if m.mode != ModeSearch {
		search = m.styles.Label.Render("Search: ") + m.styles.Value.Render(orDash(state.Filter.Search))
	}
	bucket := state.Filter.Bucket
	if bucket == "" {
		bucket = orders.BucketAll
	}
	b.WriteString(search + "   " + m.styles.Label.Render("Date: ") + m.styles.Value.Render(string(bucket)))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	pages := max(snap.PageCount, 1)
	selected := len(snap.SelectedIDs)
	total := m.ctrl.Store().Len()
	footer := fmt.Sprintf("Page %d of %d · %s of %s orders · %d per page · %d selected (%.1f%%)",
		min(state.Page+1, pages), pages,
		humanize.Comma(int64(snap.TotalFiltered)), humanize.Comma(int64(total)),
		state.PageSize, selected,
		metrics.PercentOfTotal(float64(selected), float64(total)))
	if snap.Indeterminate {
		footer += " · partial"
	}
	b.WriteString(m.styles.Footer.Render(footer))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("/ search · d date · 1-6 sort · h/l page · s size · space select · a all · q quit"))
	return b.String()
}

func nextBucket(current orders.DateBucket) orders.DateBucket {
	buckets := orders.DateBuckets()
	if current == "" {
		current = orders.BucketAll
	}
	idx := slices.Index(buckets, current)
	return buckets[(idx+1)%len(buckets)]
}

func nextPageSize(current int) int {
	idx := slices.Index(orders.PageSizes, current)
	return orders.PageSizes[(idx+1)%len(orders.PageSizes)]
}

func columnTitle(field orders.Field) string {
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

func arrow(indicator string) string {
	switch indicator {
	case "asc":
		return " ↑"
	case "desc":
		return " ↓"
	default:
		return ""
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
