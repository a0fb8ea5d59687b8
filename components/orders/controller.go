package orders

// Controller owns the view state of one mounted order list and recomputes the
// visible page after every mutation. It is not safe for concurrent use; callers
// serialize events the way a UI event loop does.
type Controller struct {
	store    *Store
	state    ViewState
	snapshot Snapshot
}

// NewController mounts a view over store with the default state.
func NewController(store *Store) *Controller {
	return NewControllerWithState(store, DefaultViewState())
}

// NewControllerWithState mounts a view over store starting from state.
func NewControllerWithState(store *Store, state ViewState) *Controller {
	if store == nil {
		store = MustStore(nil)
	}
	if state.Selected == nil {
		state.Selected = []string{}
	}
	c := &Controller{store: store, state: state}
	c.snapshot = Derive(store, state)
	return c
}

// Dispatch applies ev and refreshes the snapshot. On error the state is unchanged.
func (c *Controller) Dispatch(ev Event) error {
	next, err := c.state.Apply(c.store, ev)
	if err != nil {
		return err
	}
	c.state = next
	c.snapshot = Derive(c.store, next)
	return nil
}

func (c *Controller) OnSearchChange(text string) {
	_ = c.Dispatch(SearchChanged(text))
}

func (c *Controller) OnDateFilterChange(bucket DateBucket) error {
	return c.Dispatch(DateFilterChanged(bucket))
}

func (c *Controller) OnSortHeaderClick(field Field) error {
	return c.Dispatch(SortHeaderClicked(field))
}

func (c *Controller) OnPageChange(index int) error {
	return c.Dispatch(PageChanged(index))
}

func (c *Controller) OnPageSizeChange(size int) error {
	return c.Dispatch(PageSizeChanged(size))
}

func (c *Controller) OnRowToggle(id string) error {
	return c.Dispatch(RowToggled(id))
}

func (c *Controller) OnSelectAllToggle(checked bool) {
	_ = c.Dispatch(SelectAllToggled(checked))
}

// State returns the current view state.
func (c *Controller) State() ViewState {
	return c.state
}

// Snapshot returns the last derived output.
func (c *Controller) Snapshot() Snapshot {
	return c.snapshot
}

// VisibleRows is the current page after filter and sort.
func (c *Controller) VisibleRows() []Order {
	return c.snapshot.Rows
}

// TotalFilteredCount is the size of the filtered set across all pages.
func (c *Controller) TotalFilteredCount() int {
	return c.snapshot.TotalFiltered
}

// SelectedIDs returns the checked ids.
func (c *Controller) SelectedIDs() []string {
	return c.snapshot.SelectedIDs
}

// IsSelected reports whether id is checked.
func (c *Controller) IsSelected(id string) bool {
	return c.state.Selection().IsSelected(id)
}

// IsIndeterminate is the select-all checkbox tri-state.
func (c *Controller) IsIndeterminate() bool {
	return c.snapshot.Indeterminate
}

// Store exposes the records behind the view.
func (c *Controller) Store() *Store {
	return c.store
}
