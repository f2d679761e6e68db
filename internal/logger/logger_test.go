package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.log")
	l, err := New("warn", "json", path)
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept", zap.String("tool", "market_research"))
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"kept"`)
	assert.Contains(t, lines[0], `"tool":"market_research"`)
}

func TestNewFallsBackToInfo(t *testing.T) {
	l, err := New("loud", "console", "stderr")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestFromContextTagsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestID(ctx))

	FromContext(ctx, base).Info("hello")
	FromContext(context.Background(), base).Info("bare")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")

	assert.NotNil(t, FromContext(ctx, nil))
}

func TestInitReplacesGlobal(t *testing.T) {
	prev := L()
	t.Cleanup(func() { global = prev })

	Init(nil)
	assert.Same(t, prev, L())

	l := zap.NewExample()
	Init(l)
	assert.Same(t, l, L())
}
