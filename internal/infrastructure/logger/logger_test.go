package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		log, err := New(&Config{Level: "debug", Format: "console", Output: "stdout", TimeFormat: "15:04:05"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("creates json logger with info level", func(t *testing.T) {
		log, err := New(&Config{Level: "info", Format: "json", Output: "stderr", TimeFormat: "15:04:05"})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		log, err := New(&Config{Level: "bogus", Format: "json", Output: "stdout", TimeFormat: "15:04:05"})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
	})
}

func TestNewForEnvironment(t *testing.T) {
	_, err := NewForEnvironment("production")
	require.NoError(t, err)

	_, err = NewForEnvironment("development")
	require.NoError(t, err)
}

func TestContextHelpers(t *testing.T) {
	base := zap.NewNop()

	t.Run("round trips logger through context", func(t *testing.T) {
		ctx := WithContext(context.Background(), base)
		assert.Same(t, base, FromContext(ctx))
	})

	t.Run("missing logger yields nop", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("request id", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), base, "req-123")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("agency id", func(t *testing.T) {
		ctx, _ := WithAgencyID(context.Background(), base, "agency-9")
		assert.Equal(t, "agency-9", GetAgencyID(ctx))
	})

	t.Run("user id", func(t *testing.T) {
		ctx, _ := WithUserID(context.Background(), base, "user-7")
		assert.Equal(t, "user-7", GetUserID(ctx))
	})

	t.Run("empty context returns empty ids", func(t *testing.T) {
		ctx := context.Background()
		assert.Empty(t, GetRequestID(ctx))
		assert.Empty(t, GetAgencyID(ctx))
		assert.Empty(t, GetUserID(ctx))
		assert.Empty(t, GetTraceID(ctx))
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}

func TestGormLoggerLogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn, WithSlowThreshold(0))
	changed := gl.LogMode(gormlogger.Silent)
	assert.NotSame(t, gl, changed)
}
