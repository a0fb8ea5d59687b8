package dashboard

import (
	"context"
	"log/slog"
	"sort"
)

// Telemetry records dashboard and order list events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// SlogTelemetry writes every event as a structured log line.
type SlogTelemetry struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogTelemetry adapts logger to Telemetry. A nil logger uses slog.Default.
func NewSlogTelemetry(logger *slog.Logger) *SlogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTelemetry{logger: logger, level: slog.LevelInfo}
}

// Record logs event at info level, or at warn level when the payload carries an error.
func (t *SlogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	level := t.level
	if _, failed := payload["error"]; failed {
		level = slog.LevelWarn
	}
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, payload[key]))
	}
	t.logger.LogAttrs(ctx, level, event, attrs...)
}
