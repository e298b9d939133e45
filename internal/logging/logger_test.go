package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/killallgit/annotator/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("json at info", func(t *testing.T) {
		logger, err := New(config.LoggingConfig{Level: "info", Format: "json"})
		require.NoError(t, err)
		assert.IsType(t, &zap.Logger{}, logger)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("console at debug", func(t *testing.T) {
		logger, err := New(config.LoggingConfig{Level: "DEBUG", Format: "console"})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New(config.LoggingConfig{Level: "loud", Format: "json"})
		assert.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := New(config.LoggingConfig{Level: "info", Format: "xml"})
		assert.Error(t, err)
	})
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotator.log")

	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("segment saved", zap.Int64("segmentation_id", 7))
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"segment saved"`)
	assert.Contains(t, string(raw), `"segmentation_id":7`)
}

func TestNewOrNop(t *testing.T) {
	logger := NewOrNop(config.LoggingConfig{Level: "nope"})
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
