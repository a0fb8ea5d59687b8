package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-orderboard/components/orders"
	"github.com/goliatone/go-orderboard/components/orders/tui"
)

type browseCmd struct {
	Query queryFlags `embed:""`
}

func (c *browseCmd) Run(ctx context.Context) error {
	state, err := c.Query.state()
	if err != nil {
		return err
	}
	store := orders.DefaultStore()
	if err := state.Validate(store); err != nil {
		return err
	}
	program := tea.NewProgram(tui.NewWithState(store, state),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
