package goadmin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/goliatone/go-orderboard/components/dashboard"
	dashboardpkg "github.com/goliatone/go-orderboard/pkg/dashboard"
	"github.com/goliatone/go-orderboard/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
	codes []string
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, code string, item goadmin.MenuItem) error {
	if s.err != nil {
		return s.err
	}
	s.codes = append(s.codes, code)
	s.items = append(s.items, item)
	return nil
}

func TestAdminBootstrapSeedsNavigablePages(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         dashboardpkg.NewService(core.Options{}),
		MenuBuilder:     builder,
		BasePath:        "/admin",
	})
	require.NoError(t, err)
	require.NoError(t, admin.Bootstrap(context.Background()))

	assert.Equal(t, []goadmin.MenuItem{
		{Label: "Overview", Route: "/admin/", Icon: "star", Position: 0},
		{Label: "Order List", Route: "/admin/orders", Icon: "description", Position: 1},
	}, builder.items)
	assert.Equal(t, []string{"admin.main", "admin.main"}, builder.codes)
	assert.NotNil(t, admin.Dashboard())
}

func TestAdminBootstrapWrapsBuilderErrors(t *testing.T) {
	builder := &stubMenuBuilder{err: errors.New("menu offline")}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         dashboardpkg.NewService(core.Options{}),
		MenuBuilder:     builder,
	})
	require.NoError(t, err)
	err = admin.Bootstrap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "menu offline")
}

func TestAdminRequiresServiceWhenEnabled(t *testing.T) {
	_, err := goadmin.New(goadmin.Config{EnableDashboard: true})
	assert.Error(t, err)
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: false,
		MenuBuilder:     builder,
	})
	require.NoError(t, err)
	require.NoError(t, admin.Bootstrap(context.Background()))
	assert.Empty(t, builder.items)
	assert.Nil(t, admin.Dashboard())
}
