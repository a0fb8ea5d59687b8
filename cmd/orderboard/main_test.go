package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-orderboard/components/orders"
)

func parse(t *testing.T, args ...string) (*cli, *kong.Context) {
	t.Helper()
	var app cli
	parser, err := kong.New(&app,
		kong.Name("orderboard"),
		kong.Configuration(yamlConfigLoader),
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &app, kctx
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orderboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDecodeFileConfig(t *testing.T) {
	cfg, err := decodeFileConfig(strings.NewReader("addr: \":9000\"\nbase_path: /ops\nchart_ttl: 30s\npage_size: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"addr":      ":9000",
		"base-path": "/ops",
		"chart-ttl": "30s",
		"size":      "5",
	}, cfg.values())

	_, err = decodeFileConfig(strings.NewReader("listen: :9000\n"))
	assert.Error(t, err)

	cfg, err = decodeFileConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cfg.values())
}

func TestConfigFileFeedsFlags(t *testing.T) {
	path := writeConfig(t, "addr: \":9000\"\nbase_path: /ops\ntheme: dark\n")

	app, kctx := parse(t, "--config", path, "serve")

	assert.Equal(t, "serve", kctx.Command())
	assert.Equal(t, ":9000", app.Serve.Addr)
	assert.Equal(t, "/ops", app.Serve.BasePath)
	assert.Equal(t, "dark", app.Serve.Theme)
	assert.Equal(t, "fiber", app.Serve.Transport)
}

func TestFlagsWinOverConfigFile(t *testing.T) {
	path := writeConfig(t, "page_size: 5\n")

	app, _ := parse(t, "--config", path, "orders")
	assert.Equal(t, 5, app.Orders.Query.Size)

	app, _ = parse(t, "--config", path, "orders", "--size", "25")
	assert.Equal(t, 25, app.Orders.Query.Size)
}

func TestQueryFlagsState(t *testing.T) {
	flags := queryFlags{Search: "CM980", Date: "All", Sort: "status", Dir: "desc", Size: 5, Selected: []string{"#CM9805", "#CM9801"}}

	state, err := flags.state()
	require.NoError(t, err)
	assert.Equal(t, "CM980", state.Filter.Search)
	assert.Equal(t, orders.Sort{Field: orders.FieldStatus, Direction: orders.Descending}, state.Sort)
	assert.Equal(t, 5, state.PageSize)
	assert.ElementsMatch(t, []string{"#CM9801", "#CM9805"}, state.Selected)

	_, err = queryFlags{Date: "All", Dir: "asc", Size: 7}.state()
	assert.ErrorIs(t, err, orders.ErrInvalidPageSize)

	_, err = queryFlags{Date: "Someday", Dir: "asc", Size: 10}.state()
	assert.ErrorIs(t, err, orders.ErrUnknownDateBucket)
}

func TestOrdersCommandPrintsPage(t *testing.T) {
	var buf bytes.Buffer
	cmd := &ordersCmd{
		Query: queryFlags{Search: "CM980", Date: "All", Sort: "id", Dir: "desc", Size: 5, Page: 1, Selected: []string{"#CM9803"}},
		out:   &buf,
	}

	require.NoError(t, cmd.Run(context.Background(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	out := buf.String()
	assert.Contains(t, out, "ID ↓")
	assert.Contains(t, out, "#CM9804")
	assert.Contains(t, out, "[x]")
	assert.NotContains(t, out, "#CM9809")
	assert.Contains(t, out, "Page 2 of 2 · 9 of 10 orders · 1 selected")
}

func TestOrdersCommandRejectsUnknownSelection(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	var buf bytes.Buffer
	cmd := &ordersCmd{Query: queryFlags{Date: "All", Dir: "asc", Size: 10, Selected: []string{"#CM9801", "bogus"}}, out: &buf}

	assert.ErrorIs(t, cmd.Run(context.Background(), logger), orders.ErrUnknownOrder)
	assert.Empty(t, buf.String())

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	cmd.Export = path
	assert.ErrorIs(t, cmd.Run(context.Background(), logger), orders.ErrUnknownOrder)
	assert.NoFileExists(t, path)
}

func TestOrdersCommandExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	cmd := &ordersCmd{Query: queryFlags{Date: "All", Dir: "asc", Size: 5}, Export: path}

	require.NoError(t, cmd.Run(context.Background(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	assert.Len(t, rows, 11, "header plus every order regardless of page size")
}

func TestMetricsReportFromDataset(t *testing.T) {
	var buf bytes.Buffer
	cmd := &metricsCmd{
		Query:   queryFlags{Date: "All", Dir: "asc", Size: 10},
		Dataset: filepath.Join("..", "..", "pkg", "analytics", "testdata", "overview.yaml"),
		Format:  "json",
		out:     &buf,
	}

	require.NoError(t, cmd.Run(context.Background()))

	var report metricsReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, 400.0, report.SalesTotal)
	require.Len(t, report.Shares, 2)
	assert.Equal(t, 25.0, report.Shares[0].Percent)
	assert.Equal(t, 75.0, report.Shares[1].Percent)
	require.NotEmpty(t, report.Scales)
	assert.Equal(t, 100.0, report.Scales[0].Width)
	assert.Equal(t, 10, report.Statuses.Total)
	for _, status := range report.Statuses.Statuses {
		assert.Equal(t, 20.0, status.Percent)
	}
}

func TestMetricsCommandText(t *testing.T) {
	var buf bytes.Buffer
	cmd := &metricsCmd{Query: queryFlags{Search: "CM980", Date: "All", Dir: "asc", Size: 10}, Format: "text", out: &buf}

	require.NoError(t, cmd.Run(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Total sales 638.72")
	assert.Contains(t, out, "Direct")
	assert.Contains(t, out, "New York")
	assert.Contains(t, out, "Orders by status (9 filtered)")
	assert.Contains(t, out, "11.1%")
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("█", 10)+strings.Repeat("░", 10)+" 50", bar(50))
	assert.Equal(t, strings.Repeat("░", 20)+" 0", bar(0))
	assert.Equal(t, strings.Repeat("█", 20)+" 100", bar(100))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "json")
	logger.Debug("orders.export", "rows", 10)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "orders.export", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])

	buf.Reset()
	newLogger(&buf, "bogus", "text").Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestAwaitServerShutsDownOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	shutdown := func(ctx context.Context) error {
		calls++
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	}
	require.NoError(t, awaitServer(ctx, make(chan error), shutdown, logger))
	assert.Equal(t, 1, calls)

	boom := errors.New("listener stuck")
	err := awaitServer(ctx, make(chan error), func(context.Context) error { return boom }, logger)
	assert.ErrorIs(t, err, boom)
}

func TestAwaitServerReturnsListenerErrors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	shutdown := func(context.Context) error {
		t.Fatal("shutdown called without cancellation")
		return nil
	}

	errc := make(chan error, 1)
	errc <- http.ErrServerClosed
	assert.NoError(t, awaitServer(context.Background(), errc, shutdown, logger))

	bind := errors.New("address already in use")
	errc <- bind
	assert.ErrorIs(t, awaitServer(context.Background(), errc, shutdown, logger), bind)
}
