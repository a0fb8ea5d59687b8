package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
)

var version = "dev"

type cli struct {
	Config    kong.ConfigFlag  `short:"c" help:"YAML configuration file. Command-line flags win over its values."`
	LogLevel  string           `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"ORDERBOARD_LOG_LEVEL" help:"Log level (debug, info, warn, error)."`
	LogFormat string           `name:"log-format" default:"text" enum:"text,json" env:"ORDERBOARD_LOG_FORMAT" help:"Log output format (text, json)."`
	Version   kong.VersionFlag `help:"Print the version and exit."`

	Serve   serveCmd   `cmd:"" default:"withargs" help:"Serve the overview and order list pages with their JSON APIs."`
	Orders  ordersCmd  `cmd:"" help:"Print one page of the order list."`
	Metrics metricsCmd `cmd:"" help:"Print sales shares, location scales and the order status breakdown."`
	Browse  browseCmd  `cmd:"" help:"Browse the order list in the terminal."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app cli
	kctx := kong.Parse(&app,
		kong.Name("orderboard"),
		kong.Description("Admin order dashboard: overview widgets, order list and metrics."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Configuration(yamlConfigLoader),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	logger := newLogger(os.Stderr, app.LogLevel, app.LogFormat)
	slog.SetDefault(logger)
	err := kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
