package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-orderboard/components/dashboard"
)

// PublishRefreshCommand pushes a refresh event to connected pages without changing any state.
type PublishRefreshCommand struct {
	hook      dashboard.RefreshHook
	telemetry Telemetry
}

// NewPublishRefreshCommand creates the command.
func NewPublishRefreshCommand(hook dashboard.RefreshHook, telemetry Telemetry) *PublishRefreshCommand {
	return &PublishRefreshCommand{hook: hook, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[dashboard.RefreshEvent] = (*PublishRefreshCommand)(nil)

// Execute publishes msg on the refresh hook.
func (c *PublishRefreshCommand) Execute(ctx context.Context, msg dashboard.RefreshEvent) error {
	if c.hook == nil {
		return errors.New("refresh command requires hook")
	}
	if msg.Topic == "" {
		msg.Topic = dashboard.TopicLayout
	}
	if err := c.hook.Publish(ctx, msg); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.refresh", map[string]any{
		"topic":  msg.Topic,
		"reason": msg.Reason,
	})
	return nil
}
