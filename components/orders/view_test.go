package orders

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerInitialSnapshot(t *testing.T) {
	c := NewController(DefaultStore())
	assert.Equal(t, DefaultViewState(), c.State())
	assert.Len(t, c.VisibleRows(), 10)
	assert.Equal(t, 10, c.TotalFilteredCount())
	assert.Equal(t, 1, c.Snapshot().PageCount)
	assert.Empty(t, c.SelectedIDs())
	assert.False(t, c.IsIndeterminate())
}

func TestSearchStatusDescendingFirstPage(t *testing.T) {
	c := NewController(DefaultStore())
	c.OnSearchChange("CM980")
	require.NoError(t, c.OnSortHeaderClick(FieldStatus))
	require.NoError(t, c.OnSortHeaderClick(FieldStatus))
	require.NoError(t, c.OnPageSizeChange(5))
	require.NoError(t, c.OnPageChange(0))

	assert.Equal(t, 9, c.TotalFilteredCount())
	assert.Equal(t, 2, c.Snapshot().PageCount)
	assert.Equal(t, []string{"#CM9805", "#CM9803", "#CM9808", "#CM9801", "#CM9806"}, ids(c.VisibleRows()))

	require.NoError(t, c.OnPageChange(1))
	assert.Equal(t, []string{"#CM9802", "#CM9807", "#CM9804", "#CM9809"}, ids(c.VisibleRows()))
}

func TestFilterChangesResetPage(t *testing.T) {
	c := NewController(DefaultStore())
	require.NoError(t, c.OnPageSizeChange(5))
	require.NoError(t, c.OnPageChange(1))

	c.OnSearchChange("lane")
	assert.Equal(t, 0, c.State().Page)

	require.NoError(t, c.OnPageChange(1))
	require.NoError(t, c.OnDateFilterChange(BucketOlder))
	assert.Equal(t, 0, c.State().Page)
	assert.Equal(t, []string{"#CM9805", "#CM9810"}, ids(c.VisibleRows()))
}

func TestUnchangedFilterKeepsPage(t *testing.T) {
	c := NewController(DefaultStore())
	require.NoError(t, c.OnPageSizeChange(5))
	require.NoError(t, c.OnPageChange(1))

	c.OnSearchChange("")
	require.NoError(t, c.OnDateFilterChange(BucketAll))
	assert.Equal(t, 1, c.State().Page)
}

func TestSortPageSizeAndSelectionKeepPage(t *testing.T) {
	c := NewController(DefaultStore())
	require.NoError(t, c.OnPageSizeChange(5))
	require.NoError(t, c.OnPageChange(1))

	require.NoError(t, c.OnSortHeaderClick(FieldUser))
	assert.Equal(t, 1, c.State().Page)
	require.NoError(t, c.OnRowToggle("#CM9801"))
	assert.Equal(t, 1, c.State().Page)
	c.OnSelectAllToggle(true)
	assert.Equal(t, 1, c.State().Page)

	require.NoError(t, c.OnPageSizeChange(25))
	assert.Equal(t, 1, c.State().Page)
	assert.Empty(t, c.VisibleRows())
	assert.Equal(t, 10, c.TotalFilteredCount())
}

func TestPageBeyondRangeIsEmpty(t *testing.T) {
	c := NewController(DefaultStore())
	require.NoError(t, c.OnPageChange(7))
	assert.Empty(t, c.VisibleRows())
	assert.Equal(t, 10, c.TotalFilteredCount())
}

func TestInvalidEventsLeaveStateUnchanged(t *testing.T) {
	c := NewController(DefaultStore())
	before := c.State()

	assert.ErrorIs(t, c.OnPageChange(-1), ErrNegativePage)
	assert.ErrorIs(t, c.OnPageSizeChange(7), ErrInvalidPageSize)
	assert.ErrorIs(t, c.OnSortHeaderClick(Field("total")), ErrUnknownField)
	assert.ErrorIs(t, c.OnDateFilterChange(DateBucket("Last Year")), ErrUnknownDateBucket)
	assert.ErrorIs(t, c.OnRowToggle("#XX0000"), ErrUnknownOrder)
	assert.ErrorIs(t, c.Dispatch(Event{Type: "drag"}), ErrUnknownEvent)

	assert.Equal(t, before, c.State())
}

func TestSelectionSurvivesFilterAndPaging(t *testing.T) {
	c := NewController(DefaultStore())
	require.NoError(t, c.OnRowToggle("#CM9805"))
	c.OnSearchChange("natali")
	require.NoError(t, c.OnPageChange(3))

	assert.True(t, c.IsSelected("#CM9805"))
	assert.Equal(t, []string{"#CM9805"}, c.SelectedIDs())
	assert.True(t, c.IsIndeterminate())
}

func TestSelectAllUsesWholeStore(t *testing.T) {
	c := NewController(DefaultStore())
	c.OnSearchChange("natali")
	c.OnSelectAllToggle(true)
	assert.Len(t, c.SelectedIDs(), 10)
	assert.True(t, c.Snapshot().AllSelected)

	require.NoError(t, c.OnRowToggle("#CM9810"))
	assert.Len(t, c.SelectedIDs(), 9)
	assert.True(t, c.IsIndeterminate())

	c.OnSelectAllToggle(false)
	assert.Empty(t, c.SelectedIDs())
	assert.False(t, c.IsIndeterminate())
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	store := DefaultStore()
	state := DefaultViewState()
	state.Selected = []string{"#CM9801"}

	next, err := state.Apply(store, RowToggled("#CM9802"))
	require.NoError(t, err)
	assert.Equal(t, []string{"#CM9801"}, state.Selected)
	assert.Equal(t, []string{"#CM9801", "#CM9802"}, next.Selected)
}

func TestDateFilterStoresCanonicalBucket(t *testing.T) {
	next, err := DefaultViewState().Apply(DefaultStore(), DateFilterChanged("this_week"))
	require.NoError(t, err)
	assert.Equal(t, BucketThisWeek, next.Filter.Bucket)
}

func TestQueryRoundTrip(t *testing.T) {
	state := DefaultViewState()
	state.Filter = Filter{Search: "lane", Bucket: BucketThisWeek}
	state.Sort = Sort{Field: FieldDate, Direction: Descending}
	state.Page = 2
	state.PageSize = 25
	state.Selected = []string{"#CM9802", "#CM9801"}

	parsed, err := ParseQuery(state.Query())
	require.NoError(t, err)
	assert.Equal(t, state, parsed)
}

func TestQueryOmitsDefaults(t *testing.T) {
	assert.Empty(t, DefaultViewState().Query())

	parsed, err := ParseQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, DefaultViewState(), parsed)
}

func TestParseQueryRejectsBadValues(t *testing.T) {
	_, err := ParseQuery(url.Values{"size": {"12"}})
	assert.ErrorIs(t, err, ErrInvalidPageSize)
	_, err = ParseQuery(url.Values{"page": {"-2"}})
	assert.ErrorIs(t, err, ErrNegativePage)
	_, err = ParseQuery(url.Values{"sort": {"total"}})
	assert.ErrorIs(t, err, ErrUnknownField)
	_, err = ParseQuery(url.Values{"dir": {"up"}})
	assert.ErrorIs(t, err, ErrUnknownDirection)
	assert.True(t, IsValidation(err))
}

func TestParseQueryAcceptsRepeatedAndCommaSeparatedSelection(t *testing.T) {
	parsed, err := ParseQuery(url.Values{"selected": {"#CM9801,#CM9803", " #CM9802 ", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"#CM9801", "#CM9803", "#CM9802"}, parsed.Selected)
	assert.Equal(t, "#CM9801,#CM9803,#CM9802", parsed.Query().Get("selected"))
}

func TestParseStoreQueryRejectsUnknownSelection(t *testing.T) {
	store := DefaultStore()

	_, err := ParseStoreQuery(store, url.Values{"selected": {"#CM9801,bogus"}})
	assert.ErrorIs(t, err, ErrUnknownOrder)
	assert.True(t, IsValidation(err))

	state, err := ParseStoreQuery(store, url.Values{"selected": {"#CM9801,#CM9802"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"#CM9801", "#CM9802"}, state.Selected)
}

func TestDeriveCountsOnlyStoredSelection(t *testing.T) {
	store := DefaultStore()
	state, err := ParseQuery(url.Values{"selected": {
		"#CM9801,#CM9802,#CM9803,#CM9804,#CM9805,#CM9806,#CM9807,#CM9808,#CM9809,bogus",
	}})
	require.NoError(t, err)

	snap := Derive(store, state)
	assert.Len(t, snap.SelectedIDs, 9)
	assert.False(t, snap.AllSelected)
	assert.True(t, snap.Indeterminate)

	state.Selected = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	snap = Derive(store, state)
	assert.Empty(t, snap.SelectedIDs)
	assert.False(t, snap.AllSelected)
	assert.False(t, snap.Indeterminate)
}

func TestSortEventAcceptsFieldAliases(t *testing.T) {
	c := NewController(DefaultStore())

	require.NoError(t, c.Dispatch(Event{Type: EventSort, Field: Field("userName")}))
	assert.Equal(t, Sort{Field: FieldUser, Direction: Ascending}, c.State().Sort)

	require.NoError(t, c.Dispatch(Event{Type: EventSort, Field: Field("User")}))
	assert.Equal(t, Sort{Field: FieldUser, Direction: Descending}, c.State().Sort)

	assert.ErrorIs(t, c.Dispatch(Event{Type: EventSort}), ErrUnknownField)
}
