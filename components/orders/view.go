package orders

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ViewState is the complete, serializable state of the order list view.
type ViewState struct {
	Filter   Filter   `json:"filter"`
	Sort     Sort     `json:"sort"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Selected []string `json:"selected"`
}

// DefaultViewState is the state on mount: no search, all dates, unsorted, first page of 10.
func DefaultViewState() ViewState {
	return ViewState{
		Filter:   DefaultFilter(),
		Sort:     DefaultSort(),
		PageSize: DefaultPageSize,
		Selected: []string{},
	}
}

// Selection returns the selected ids as a Selection.
func (v ViewState) Selection() Selection {
	return NewSelection(v.Selected...)
}

// EventType names an inbound UI event.
type EventType string

const (
	EventSearch     EventType = "search"
	EventDateFilter EventType = "date_filter"
	EventSort       EventType = "sort"
	EventPage       EventType = "page"
	EventPageSize   EventType = "page_size"
	EventRowToggle  EventType = "row_toggle"
	EventSelectAll  EventType = "select_all"
)

// Event is a single user input. Only the fields relevant to Type are read.
type Event struct {
	Type    EventType  `json:"type"`
	Text    string     `json:"text,omitempty"`
	Bucket  DateBucket `json:"bucket,omitempty"`
	Field   Field      `json:"field,omitempty"`
	Index   int        `json:"index,omitempty"`
	Size    int        `json:"size,omitempty"`
	ID      string     `json:"id,omitempty"`
	Checked bool       `json:"checked,omitempty"`
}

func SearchChanged(text string) Event           { return Event{Type: EventSearch, Text: text} }
func DateFilterChanged(bucket DateBucket) Event { return Event{Type: EventDateFilter, Bucket: bucket} }
func SortHeaderClicked(field Field) Event       { return Event{Type: EventSort, Field: field} }
func PageChanged(index int) Event               { return Event{Type: EventPage, Index: index} }
func PageSizeChanged(size int) Event            { return Event{Type: EventPageSize, Size: size} }
func RowToggled(id string) Event                { return Event{Type: EventRowToggle, ID: id} }
func SelectAllToggled(checked bool) Event       { return Event{Type: EventSelectAll, Checked: checked} }

// Apply returns the state after ev. Filter changes reset the page index; sort, page size
// and selection changes keep it. The receiver is never modified.
func (v ViewState) Apply(store *Store, ev Event) (ViewState, error) {
	next := v
	next.Selected = append([]string{}, v.Selected...)
	switch ev.Type {
	case EventSearch:
		if ev.Text != v.Filter.Search {
			next.Filter.Search = ev.Text
			next.Page = 0
		}
	case EventDateFilter:
		bucket, err := ParseDateBucket(string(ev.Bucket))
		if err != nil {
			return v, err
		}
		if bucket != v.Filter.Bucket {
			next.Filter.Bucket = bucket
			next.Page = 0
		}
	case EventSort:
		field, err := ParseField(string(ev.Field))
		if err != nil {
			return v, err
		}
		if _, ok := accessors[field]; !ok {
			return v, fmt.Errorf("%w: %q", ErrUnknownField, ev.Field)
		}
		next.Sort = v.Sort.Toggle(field)
	case EventPage:
		if ev.Index < 0 {
			return v, fmt.Errorf("%w: %d", ErrNegativePage, ev.Index)
		}
		next.Page = ev.Index
	case EventPageSize:
		if !ValidPageSize(ev.Size) {
			return v, fmt.Errorf("%w: got %d", ErrInvalidPageSize, ev.Size)
		}
		next.PageSize = ev.Size
	case EventRowToggle:
		if !store.Contains(ev.ID) {
			return v, fmt.Errorf("%w: %s", ErrUnknownOrder, ev.ID)
		}
		next.Selected = v.Selection().Toggle(ev.ID).IDs()
	case EventSelectAll:
		next.Selected = v.Selection().ToggleAll(store.IDs(), ev.Checked).IDs()
	default:
		return v, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return next, nil
}

// Snapshot is the rendered projection of a ViewState.
type Snapshot struct {
	State         ViewState `json:"state"`
	Rows          []Order   `json:"rows"`
	TotalFiltered int       `json:"total_filtered"`
	PageCount     int       `json:"page_count"`
	SelectedIDs   []string  `json:"selected_ids"`
	Indeterminate bool      `json:"indeterminate"`
	AllSelected   bool      `json:"all_selected"`
}

// Ordered runs the filter and sort stages without paginating.
func Ordered(store *Store, state ViewState) []Order {
	return state.Sort.Apply(state.Filter.Apply(store.All()))
}

// Derive runs filter, sort and paginate, in that order, over the store. Selected ids the
// store does not hold are left out of the selection counts.
func Derive(store *Store, state ViewState) Snapshot {
	ordered := Ordered(store, state)
	selection := state.Selection().Retain(store.Contains)
	return Snapshot{
		State:         state,
		Rows:          Page(ordered, state.Page, state.PageSize),
		TotalFiltered: len(ordered),
		PageCount:     PageCount(len(ordered), state.PageSize),
		SelectedIDs:   selection.IDs(),
		Indeterminate: selection.Indeterminate(store.Len()),
		AllSelected:   selection.AllSelected(store.Len()),
	}
}

// ParseQuery reads a ViewState from URL values: q, date, sort, dir, page, size and
// selected, a comma separated id list that may also be repeated. Missing values keep their defaults.
func ParseQuery(values url.Values) (ViewState, error) {
	state := DefaultViewState()
	state.Filter.Search = values.Get("q")

	bucket, err := ParseDateBucket(values.Get("date"))
	if err != nil {
		return state, err
	}
	state.Filter.Bucket = bucket

	field, err := ParseField(values.Get("sort"))
	if err != nil {
		return state, err
	}
	dir, err := ParseDirection(values.Get("dir"))
	if err != nil {
		return state, err
	}
	state.Sort = Sort{Field: field, Direction: dir}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return state, fmt.Errorf("%w: %q", ErrNegativePage, raw)
		}
		state.Page = page
	}
	if raw := values.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || !ValidPageSize(size) {
			return state, fmt.Errorf("%w: got %q", ErrInvalidPageSize, raw)
		}
		state.PageSize = size
	}
	state.Selected = NewSelection(splitIDs(values["selected"])...).IDs()
	return state, nil
}

// ParseStoreQuery is ParseQuery followed by Validate against store.
func ParseStoreQuery(store *Store, values url.Values) (ViewState, error) {
	state, err := ParseQuery(values)
	if err != nil {
		return state, err
	}
	return state, state.Validate(store)
}

// Validate reports ErrUnknownOrder for the first selected id missing from store.
func (v ViewState) Validate(store *Store) error {
	for _, id := range v.Selected {
		if !store.Contains(id) {
			return fmt.Errorf("%w: %s", ErrUnknownOrder, id)
		}
	}
	return nil
}

// Query encodes the state as URL values understood by ParseQuery. Defaults are omitted.
func (v ViewState) Query() url.Values {
	values := url.Values{}
	if v.Filter.Search != "" {
		values.Set("q", v.Filter.Search)
	}
	if v.Filter.Bucket != "" && v.Filter.Bucket != BucketAll {
		values.Set("date", string(v.Filter.Bucket))
	}
	if v.Sort.Active() {
		values.Set("sort", string(v.Sort.Field))
		values.Set("dir", string(v.Sort.Direction))
	}
	if v.Page > 0 {
		values.Set("page", strconv.Itoa(v.Page))
	}
	if v.PageSize != 0 && v.PageSize != DefaultPageSize {
		values.Set("size", strconv.Itoa(v.PageSize))
	}
	if len(v.Selected) > 0 {
		values.Set("selected", strings.Join(v.Selected, ","))
	}
	return values
}

func splitIDs(raw []string) []string {
	var out []string
	for _, value := range raw {
		for _, id := range strings.Split(value, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}
