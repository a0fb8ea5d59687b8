package queries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/orders"
)

type stubLayoutService struct {
	calls int
}

func (s *stubLayoutService) ConfigureLayout(context.Context, dashboard.ViewerContext) (dashboard.Layout, error) {
	s.calls++
	return dashboard.Layout{Areas: map[string][]dashboard.WidgetInstance{}}, nil
}

type stubAreaService struct {
	calls int
	area  string
}

func (s *stubAreaService) ResolveArea(_ context.Context, _ dashboard.ViewerContext, area string) (dashboard.ResolvedArea, error) {
	s.calls++
	s.area = area
	return dashboard.ResolvedArea{AreaCode: area}, nil
}

func TestLayoutQuery(t *testing.T) {
	service := &stubLayoutService{}
	query := NewLayoutQuery(service)
	_, err := query.Query(context.Background(), dashboard.ViewerContext{})
	require.NoError(t, err)
	assert.Equal(t, 1, service.calls)
}

func TestWidgetAreaQuery(t *testing.T) {
	service := &stubAreaService{}
	query := NewWidgetAreaQuery(service)
	area, err := query.Query(context.Background(), WidgetAreaInput{AreaCode: dashboard.AreaPanel})
	require.NoError(t, err)
	assert.Equal(t, 1, service.calls)
	assert.Equal(t, dashboard.AreaPanel, area.AreaCode)

	_, err = query.Query(context.Background(), WidgetAreaInput{})
	assert.ErrorIs(t, err, dashboard.ErrAreaRequired)
	assert.Equal(t, 1, service.calls)
}

func TestOrderSnapshotQuery(t *testing.T) {
	ctx := context.Background()
	sessions := orders.NewSessionStore(orders.DefaultStore())
	_, err := sessions.OpenWithID(ctx, "s1")
	require.NoError(t, err)
	_, err = sessions.Apply(ctx, "s1", orders.PageSizeChanged(5))
	require.NoError(t, err)

	query := NewOrderSnapshotQuery(sessions)
	snap, err := query.Query(ctx, OrderSnapshotInput{SessionID: "s1"})
	require.NoError(t, err)
	assert.Len(t, snap.Rows, 5)
	assert.Equal(t, 2, snap.PageCount)

	_, err = query.Query(ctx, OrderSnapshotInput{SessionID: "nope"})
	assert.ErrorIs(t, err, orders.ErrSessionNotFound)
}

func TestOrderPageQuery(t *testing.T) {
	query := NewOrderPageQuery(orders.DefaultStore())

	state := orders.ViewState{Filter: orders.Filter{Search: "CM980"}}
	snap, err := query.Query(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 9, snap.TotalFiltered)
	assert.Equal(t, orders.DefaultPageSize, snap.State.PageSize)
	assert.Len(t, snap.Rows, 9)

	_, err = query.Query(context.Background(), orders.ViewState{PageSize: 7})
	assert.ErrorIs(t, err, orders.ErrInvalidPageSize)

	_, err = query.Query(context.Background(), orders.ViewState{Page: -1})
	assert.ErrorIs(t, err, orders.ErrNegativePage)
}

func TestStatusBreakdownQuery(t *testing.T) {
	query := NewStatusBreakdownQuery(orders.DefaultStore())

	all, err := query.Query(context.Background(), orders.DefaultViewState())
	require.NoError(t, err)
	assert.Equal(t, 10, all.Total)
	require.Len(t, all.Statuses, len(orders.Statuses()))
	for _, entry := range all.Statuses {
		assert.Equal(t, 2, entry.Count)
		assert.InDelta(t, 20.0, entry.Percent, 1e-9)
		assert.InDelta(t, 100.0, entry.Scale, 1e-9)
	}

	state := orders.DefaultViewState()
	state.Filter.Search = "CM980"
	state.Selected = []string{"#CM9801"}
	filtered, err := query.Query(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 9, filtered.Total)
	assert.Equal(t, 1, filtered.Selected)
	rejected := filtered.Statuses[len(filtered.Statuses)-1]
	assert.Equal(t, orders.StatusRejected, rejected.Status)
	assert.Equal(t, 1, rejected.Count)
	assert.InDelta(t, 11.1, rejected.Percent, 1e-9)
	assert.InDelta(t, 50.0, rejected.Scale, 1e-9)
	assert.InDelta(t, 22.2, filtered.Statuses[0].Percent, 1e-9)
}

func TestOrderQueriesRejectUnknownSelection(t *testing.T) {
	store := orders.DefaultStore()
	state := orders.DefaultViewState()
	state.Selected = []string{"#CM9801", "#XX0000"}

	_, err := NewOrderPageQuery(store).Query(context.Background(), state)
	assert.ErrorIs(t, err, orders.ErrUnknownOrder)

	_, err = NewStatusBreakdownQuery(store).Query(context.Background(), state)
	assert.ErrorIs(t, err, orders.ErrUnknownOrder)
}
