package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("development logs debug", func(t *testing.T) {
		logger, err := NewLogger(true)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("production starts at info", func(t *testing.T) {
		logger, err := NewLogger(false)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	})
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger, err := NewLogger(false)
	require.NoError(t, err)
	assert.Same(t, logger, OrNop(logger))
}
