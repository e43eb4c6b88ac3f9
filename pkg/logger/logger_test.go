package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allstories/studiokit/pkg/logger"
)

type ctxKey string

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "studiokit")),
		)
		log.Info("hello")

		rec := decodeLine(t, &buf)
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "studiokit", rec["service"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")

		assert.Zero(t, buf.Len())
	})

	t.Run("context value injected", func(t *testing.T) {
		t.Parallel()

		key := ctxKey("request_id")
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", key),
		)

		ctx := context.WithValue(context.Background(), key, "req-123")
		log.InfoContext(ctx, "hello")

		rec := decodeLine(t, &buf)
		assert.Equal(t, "req-123", rec["request_id"])
	})

	t.Run("extractors survive With", func(t *testing.T) {
		t.Parallel()

		key := ctxKey("request_id")
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", key),
		).With("component", "gate")

		ctx := context.WithValue(context.Background(), key, "req-456")
		log.InfoContext(ctx, "hello")

		rec := decodeLine(t, &buf)
		assert.Equal(t, "req-456", rec["request_id"])
		assert.Equal(t, "gate", rec["component"])
	})

	t.Run("development preset uses text and debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithDevelopment("studiokit"))
		log.Debug("verbose")

		out := buf.String()
		assert.Contains(t, out, "msg=verbose")
		assert.Contains(t, out, "env=development")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})
}
