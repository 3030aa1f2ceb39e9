package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/dasdy/keyview/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(logging.ContextHandler{Handler: slog.NewTextHandler(&buf, nil)})

	ctx := logging.AppendCtx(logging.PackageCtx("viewer"), slog.Int("keys", 3))
	logger.InfoContext(ctx, "loaded")

	assert.Contains(t, buf.String(), "package=viewer")
	assert.Contains(t, buf.String(), "keys=3")
}

func TestAppendCtxDoesNotShareAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(logging.ContextHandler{Handler: slog.NewTextHandler(&buf, nil)})

	base := logging.PackageCtx("web")
	_ = logging.AppendCtx(base, slog.String("first", "1"))
	second := logging.AppendCtx(base, slog.String("second", "2"))

	logger.InfoContext(second, "msg")

	assert.NotContains(t, buf.String(), "first=1")
	assert.Contains(t, buf.String(), "second=2")
}

func TestContextHandlerWithAttrsKeepsContext(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(logging.ContextHandler{Handler: slog.NewTextHandler(&buf, nil)}).With("component", "x")

	logger.InfoContext(logging.PackageCtx("tui"), "msg")

	assert.Contains(t, buf.String(), "component=x")
	assert.Contains(t, buf.String(), "package=tui")
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tc.in)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := logging.ParseLevel("loud")
	require.Error(t, err)
}

func TestNewHandlerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(logging.NewHandler(&buf, slog.LevelWarn))

	logger.Info("hidden")
	logger.WarnContext(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
