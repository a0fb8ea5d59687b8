package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-orderboard/components/dashboard"
	"github.com/goliatone/go-orderboard/components/orders"
)

// OrderSessions is the session store the order list commands drive.
type OrderSessions interface {
	OpenWithID(ctx context.Context, id string) (orders.Snapshot, error)
	Apply(ctx context.Context, id string, ev orders.Event) (orders.Snapshot, error)
	Close(ctx context.Context, id string)
}

var _ OrderSessions = (*orders.SessionStore)(nil)

// OpenOrderSessionInput names the session to create.
type OpenOrderSessionInput struct {
	SessionID string `json:"session"`
}

// ApplyOrderEventInput carries one order list event for a session.
type ApplyOrderEventInput struct {
	SessionID string       `json:"session"`
	Event     orders.Event `json:"event"`
}

// CloseOrderSessionInput names the session to drop.
type CloseOrderSessionInput struct {
	SessionID string `json:"session"`
}

// OpenOrderSessionCommand starts an order list session in its default state.
type OpenOrderSessionCommand struct {
	sessions  OrderSessions
	telemetry Telemetry
}

// NewOpenOrderSessionCommand creates the command.
func NewOpenOrderSessionCommand(sessions OrderSessions, telemetry Telemetry) *OpenOrderSessionCommand {
	return &OpenOrderSessionCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[OpenOrderSessionInput] = (*OpenOrderSessionCommand)(nil)

// Execute opens the session.
func (c *OpenOrderSessionCommand) Execute(ctx context.Context, msg OpenOrderSessionInput) error {
	if c.sessions == nil {
		return errors.New("open session command requires session store")
	}
	snap, err := c.sessions.OpenWithID(ctx, msg.SessionID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "orders.session.open", map[string]any{
		"session":        msg.SessionID,
		"total_filtered": snap.TotalFiltered,
	})
	return nil
}

// ApplyOrderEventCommand runs an event against a session and announces the change.
type ApplyOrderEventCommand struct {
	sessions  OrderSessions
	hook      dashboard.RefreshHook
	telemetry Telemetry
}

// NewApplyOrderEventCommand creates the command. A nil hook skips refresh events.
func NewApplyOrderEventCommand(sessions OrderSessions, hook dashboard.RefreshHook, telemetry Telemetry) *ApplyOrderEventCommand {
	return &ApplyOrderEventCommand{sessions: sessions, hook: hook, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ApplyOrderEventInput] = (*ApplyOrderEventCommand)(nil)

// Execute applies the event. Rejected events leave the session unchanged and return the error.
func (c *ApplyOrderEventCommand) Execute(ctx context.Context, msg ApplyOrderEventInput) error {
	if c.sessions == nil {
		return errors.New("apply event command requires session store")
	}
	event := "orders.event." + string(msg.Event.Type)
	snap, err := c.sessions.Apply(ctx, msg.SessionID, msg.Event)
	if err != nil {
		c.telemetry.Record(ctx, "orders.event.rejected", map[string]any{
			"session": msg.SessionID,
			"type":    string(msg.Event.Type),
			"error":   err.Error(),
		})
		return err
	}
	c.telemetry.Record(ctx, event, map[string]any{
		"session":        msg.SessionID,
		"page":           snap.State.Page,
		"total_filtered": snap.TotalFiltered,
		"selected":       len(snap.SelectedIDs),
	})
	if c.hook != nil {
		if err := c.hook.Publish(ctx, dashboard.RefreshEvent{
			Topic:     dashboard.TopicOrders,
			Reason:    event,
			SessionID: msg.SessionID,
		}); err != nil {
			c.telemetry.Record(ctx, "orders.refresh.error", map[string]any{"error": err.Error()})
		}
	}
	return nil
}

// CloseOrderSessionCommand drops a session.
type CloseOrderSessionCommand struct {
	sessions  OrderSessions
	telemetry Telemetry
}

// NewCloseOrderSessionCommand creates the command.
func NewCloseOrderSessionCommand(sessions OrderSessions, telemetry Telemetry) *CloseOrderSessionCommand {
	return &CloseOrderSessionCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CloseOrderSessionInput] = (*CloseOrderSessionCommand)(nil)

// Execute closes the session. Unknown sessions are ignored.
func (c *CloseOrderSessionCommand) Execute(ctx context.Context, msg CloseOrderSessionInput) error {
	if c.sessions == nil {
		return errors.New("close session command requires session store")
	}
	c.sessions.Close(ctx, msg.SessionID)
	c.telemetry.Record(ctx, "orders.session.close", map[string]any{"session": msg.SessionID})
	return nil
}
