package queries

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-orderboard/components/metrics"
	"github.com/goliatone/go-orderboard/components/orders"
)

type snapshotSource interface {
	Get(ctx context.Context, id string) (orders.Snapshot, error)
}

// OrderSnapshotInput names the session to read.
type OrderSnapshotInput struct {
	SessionID string
}

// OrderSnapshotQuery returns the current snapshot of an order list session.
type OrderSnapshotQuery struct {
	sessions snapshotSource
}

// NewOrderSnapshotQuery builds the query.
func NewOrderSnapshotQuery(sessions snapshotSource) *OrderSnapshotQuery {
	return &OrderSnapshotQuery{sessions: sessions}
}

var _ gocommand.Querier[OrderSnapshotInput, orders.Snapshot] = (*OrderSnapshotQuery)(nil)

func (q *OrderSnapshotQuery) Query(ctx context.Context, input OrderSnapshotInput) (orders.Snapshot, error) {
	if q.sessions == nil {
		return orders.Snapshot{}, errors.New("snapshot query requires session store")
	}
	return q.sessions.Get(ctx, input.SessionID)
}

// OrderPageQuery derives a snapshot from a caller supplied view state without any session.
type OrderPageQuery struct {
	store *orders.Store
}

// NewOrderPageQuery builds the query over store.
func NewOrderPageQuery(store *orders.Store) *OrderPageQuery {
	return &OrderPageQuery{store: store}
}

var _ gocommand.Querier[orders.ViewState, orders.Snapshot] = (*OrderPageQuery)(nil)

// Query validates state and derives its snapshot. A zero page size takes the default.
func (q *OrderPageQuery) Query(_ context.Context, state orders.ViewState) (orders.Snapshot, error) {
	if q.store == nil {
		return orders.Snapshot{}, errors.New("page query requires order store")
	}
	if state.PageSize == 0 {
		state.PageSize = orders.DefaultPageSize
	}
	if !orders.ValidPageSize(state.PageSize) {
		return orders.Snapshot{}, fmt.Errorf("%w: got %d", orders.ErrInvalidPageSize, state.PageSize)
	}
	if state.Page < 0 {
		return orders.Snapshot{}, fmt.Errorf("%w: %d", orders.ErrNegativePage, state.Page)
	}
	if _, err := orders.ParseDateBucket(string(state.Filter.Bucket)); err != nil {
		return orders.Snapshot{}, err
	}
	if err := state.Validate(q.store); err != nil {
		return orders.Snapshot{}, err
	}
	return orders.Derive(q.store, state), nil
}

// StatusCount is the share of one status within the filtered orders.
type StatusCount struct {
	Status  orders.Status `json:"status"`
	Color   string        `json:"color"`
	Count   int           `json:"count"`
	Percent float64       `json:"percent"`
	Scale   float64       `json:"scale"`
}

// StatusBreakdown summarises the filtered orders of a view state by status.
type StatusBreakdown struct {
	Total    int           `json:"total"`
	Selected int           `json:"selected"`
	Statuses []StatusCount `json:"statuses"`
}

// StatusBreakdownQuery counts the orders matching a view state's filter per status.
type StatusBreakdownQuery struct {
	store *orders.Store
}

// NewStatusBreakdownQuery builds the query over store.
func NewStatusBreakdownQuery(store *orders.Store) *StatusBreakdownQuery {
	return &StatusBreakdownQuery{store: store}
}

var _ gocommand.Querier[orders.ViewState, StatusBreakdown] = (*StatusBreakdownQuery)(nil)

// Query returns one entry per known status in display order. Percent is the share of the
// filtered total and Scale is relative to the most frequent status.
func (q *StatusBreakdownQuery) Query(_ context.Context, state orders.ViewState) (StatusBreakdown, error) {
	if q.store == nil {
		return StatusBreakdown{}, errors.New("status query requires order store")
	}
	if err := state.Validate(q.store); err != nil {
		return StatusBreakdown{}, err
	}
	filtered := orders.Ordered(q.store, state)
	counts := map[orders.Status]int{}
	for _, order := range filtered {
		counts[order.Status]++
	}
	var peak float64
	for _, count := range counts {
		peak = metrics.Max(peak, float64(count))
	}
	out := StatusBreakdown{
		Total:    len(filtered),
		Selected: len(state.Selected),
	}
	for _, status := range orders.Statuses() {
		count := counts[status]
		out.Statuses = append(out.Statuses, StatusCount{
			Status:  status,
			Color:   status.Color(),
			Count:   count,
			Percent: metrics.PercentOfTotal(float64(count), float64(len(filtered))),
			Scale:   metrics.RelativeScale(float64(count), peak),
		})
	}
	return out, nil
}
