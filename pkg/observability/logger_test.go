package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("text output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatText, Output: &buf})

		logger.Info("items generated", "count", 3)
		assert.Contains(t, buf.String(), "items generated")
		assert.Contains(t, buf.String(), "count=3")
	})

	t.Run("json output with service attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:          LogLevelInfo,
			Format:         LogFormatJSON,
			Output:         &buf,
			ServiceName:    "dayquest-worker",
			ServiceVersion: "1.2.3",
		})

		logger.Info("tick")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "tick", entry["msg"])
		assert.Equal(t, "dayquest-worker", entry["service"])
		assert.Equal(t, "1.2.3", entry["version"])
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelWarn, Output: &buf})

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")

		assert.NotContains(t, buf.String(), "debug message")
		assert.NotContains(t, buf.String(), "info message")
		assert.Contains(t, buf.String(), "warn message")
	})

	t.Run("adds ids from context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatJSON, Output: &buf})

		ctx := WithRequestID(WithCorrelationID(context.Background(), "corr-123"), "req-456")
		logger.InfoContext(ctx, "with context")

		assert.Contains(t, buf.String(), "corr-123")
		assert.Contains(t, buf.String(), "req-456")
	})
}

func TestLogConfigFor(t *testing.T) {
	t.Run("development defaults to debug text", func(t *testing.T) {
		cfg := LogConfigFor("dayquest", "development", "info", "")
		assert.Equal(t, LogLevelDebug, cfg.Level)
		assert.Equal(t, LogFormatText, cfg.Format)
		assert.Equal(t, "dayquest", cfg.ServiceName)
	})

	t.Run("production uses json", func(t *testing.T) {
		cfg := LogConfigFor("dayquest", "production", "warn", "")
		assert.Equal(t, LogLevelWarn, cfg.Level)
		assert.Equal(t, LogFormatJSON, cfg.Format)
		assert.True(t, cfg.AddSource)
	})

	t.Run("explicit format wins", func(t *testing.T) {
		cfg := LogConfigFor("dayquest", "production", "", "TEXT")
		assert.Equal(t, LogFormatText, cfg.Format)
	})
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSlogLevel(tt.input))
		})
	}
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogOperation(logger, "ensure_today", "date", "2026-02-14").Info("done")

	assert.Contains(t, buf.String(), "operation=ensure_today")
	assert.Contains(t, buf.String(), "date=2026-02-14")
}

func TestNewRequestContext(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "parent")
	assert.Equal(t, "parent", CorrelationIDFromContext(ctx))
	assert.NotEmpty(t, RequestIDFromContext(ctx))

	fresh := NewRequestContext(context.Background(), "")
	assert.NotEmpty(t, CorrelationIDFromContext(fresh))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
}

func TestHealthRegistry(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("connection refused") }

	t.Run("empty registry is healthy", func(t *testing.T) {
		assert.Equal(t, HealthStatusHealthy, NewHealthRegistry().Check(context.Background()).Status)
	})

	t.Run("optional failure degrades", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", PingHealthChecker(ok))
		r.Register("redis", OptionalPingHealthChecker(fail))

		health := r.Check(context.Background())
		assert.Equal(t, HealthStatusDegraded, health.Status)
		assert.Equal(t, "connection refused", health.Checks["redis"].Message)
	})

	t.Run("required failure is unhealthy", func(t *testing.T) {
		r := NewHealthRegistry()
		r.Register("database", PingHealthChecker(fail))
		r.Register("redis", OptionalPingHealthChecker(fail))

		assert.Equal(t, HealthStatusUnhealthy, r.Check(context.Background()).Status)
	})
}

func TestInMemoryMetrics(t *testing.T) {
	m := NewInMemoryMetrics()
	m.Counter("items_generated", 2)
	m.Counter("items_generated", 3)
	m.Counter("transitions", 1, T("status", "DONE"))
	m.Timing("refresh", 25*time.Millisecond)

	assert.Equal(t, int64(5), m.GetCounter("items_generated"))
	assert.Equal(t, int64(1), m.GetCounter("transitions", T("status", "DONE")))

	snap := m.Snapshot()
	assert.Equal(t, int64(5), snap["items_generated"])
	assert.Equal(t, int64(1), snap["transitions{status=DONE}"])
	assert.Equal(t, int64(25), snap["refresh_ms"])
}
