package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/dashboard/commands"
	"github.com/goliatone/go-orderboard/components/dashboard/queries"
	"github.com/goliatone/go-orderboard/components/orders"
)

// Executor is the command and query surface shared by the net/http and go-router transports.
type Executor interface {
	Assign(ctx context.Context, req dashboard.AddWidgetRequest) error
	Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error
	Refresh(ctx context.Context, event dashboard.RefreshEvent) error
	OpenSession(ctx context.Context, input commands.OpenOrderSessionInput) error
	ApplyEvent(ctx context.Context, input commands.ApplyOrderEventInput) error
	CloseSession(ctx context.Context, input commands.CloseOrderSessionInput) error
	Snapshot(ctx context.Context, input queries.OrderSnapshotInput) (orders.Snapshot, error)
	Page(ctx context.Context, state orders.ViewState) (orders.Snapshot, error)
	Statuses(ctx context.Context, state orders.ViewState) (queries.StatusBreakdown, error)
}

// ErrNotConfigured is returned when the executor lacks the handler for a call.
var ErrNotConfigured = errors.New("httpapi: handler not configured")

// CommandExecutor dispatches to go-command commanders and queriers.
type CommandExecutor struct {
	AssignCommander       gocommand.Commander[dashboard.AddWidgetRequest]
	ReorderCommander      gocommand.Commander[commands.ReorderWidgetsInput]
	RefreshCommander      gocommand.Commander[dashboard.RefreshEvent]
	OpenSessionCommander  gocommand.Commander[commands.OpenOrderSessionInput]
	ApplyEventCommander   gocommand.Commander[commands.ApplyOrderEventInput]
	CloseSessionCommander gocommand.Commander[commands.CloseOrderSessionInput]
	SnapshotQuerier       gocommand.Querier[queries.OrderSnapshotInput, orders.Snapshot]
	PageQuerier           gocommand.Querier[orders.ViewState, orders.Snapshot]
	StatusQuerier         gocommand.Querier[orders.ViewState, queries.StatusBreakdown]
}

var _ Executor = (*CommandExecutor)(nil)

// NewCommandExecutor wires every command and query against the dashboard service and the
// order session store. Order events are announced on the service refresh hook.
func NewCommandExecutor(service *dashboard.Service, sessions *orders.SessionStore, telemetry commands.Telemetry) *CommandExecutor {
	exec := &CommandExecutor{}
	if service != nil {
		exec.AssignCommander = commands.NewAssignWidgetCommand(service, telemetry)
		exec.ReorderCommander = commands.NewReorderWidgetsCommand(service, telemetry)
		exec.RefreshCommander = commands.NewPublishRefreshCommand(service.RefreshHook(), telemetry)
	}
	if sessions != nil {
		var hook dashboard.RefreshHook
		if service != nil {
			hook = service.RefreshHook()
		}
		exec.OpenSessionCommander = commands.NewOpenOrderSessionCommand(sessions, telemetry)
		exec.ApplyEventCommander = commands.NewApplyOrderEventCommand(sessions, hook, telemetry)
		exec.CloseSessionCommander = commands.NewCloseOrderSessionCommand(sessions, telemetry)
		exec.SnapshotQuerier = queries.NewOrderSnapshotQuery(sessions)
		exec.PageQuerier = queries.NewOrderPageQuery(sessions.Records())
		exec.StatusQuerier = queries.NewStatusBreakdownQuery(sessions.Records())
	}
	return exec
}

func (e *CommandExecutor) Assign(ctx context.Context, req dashboard.AddWidgetRequest) error {
	if e.AssignCommander == nil {
		return ErrNotConfigured
	}
	return e.AssignCommander.Execute(ctx, req)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error {
	if e.ReorderCommander == nil {
		return ErrNotConfigured
	}
	return e.ReorderCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, event dashboard.RefreshEvent) error {
	if e.RefreshCommander == nil {
		return ErrNotConfigured
	}
	return e.RefreshCommander.Execute(ctx, event)
}

func (e *CommandExecutor) OpenSession(ctx context.Context, input commands.OpenOrderSessionInput) error {
	if e.OpenSessionCommander == nil {
		return ErrNotConfigured
	}
	return e.OpenSessionCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ApplyEvent(ctx context.Context, input commands.ApplyOrderEventInput) error {
	if e.ApplyEventCommander == nil {
		return ErrNotConfigured
	}
	return e.ApplyEventCommander.Execute(ctx, input)
}

func (e *CommandExecutor) CloseSession(ctx context.Context, input commands.CloseOrderSessionInput) error {
	if e.CloseSessionCommander == nil {
		return ErrNotConfigured
	}
	return e.CloseSessionCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Snapshot(ctx context.Context, input queries.OrderSnapshotInput) (orders.Snapshot, error) {
	if e.SnapshotQuerier == nil {
		return orders.Snapshot{}, ErrNotConfigured
	}
	return e.SnapshotQuerier.Query(ctx, input)
}

func (e *CommandExecutor) Page(ctx context.Context, state orders.ViewState) (orders.Snapshot, error) {
	if e.PageQuerier == nil {
		return orders.Snapshot{}, ErrNotConfigured
	}
	return e.PageQuerier.Query(ctx, state)
}

func (e *CommandExecutor) Statuses(ctx context.Context, state orders.ViewState) (queries.StatusBreakdown, error) {
	if e.StatusQuerier == nil {
		return queries.StatusBreakdown{}, ErrNotConfigured
	}
	return e.StatusQuerier.Query(ctx, state)
}
