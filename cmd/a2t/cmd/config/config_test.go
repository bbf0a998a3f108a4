package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flash-asr/internal/config"
)

func TestTable_MasksSecrets(t *testing.T) {
	t.Setenv(config.EnvAppID, "app-123456")
	t.Setenv(config.EnvAccessToken, "")

	out := Table(config.DefaultSettings())

	assert.Contains(t, out, "(built-in defaults)")
	assert.Contains(t, out, config.DefaultEndpoint)
	assert.Contains(t, out, "******3456")
	assert.NotContains(t, out, "app-123456")
	assert.Contains(t, out, "(not set)")
}

func TestTable_MissingFFmpeg(t *testing.T) {
	settings := config.DefaultSettings()
	settings.FFmpegPath = "definitely-not-a-real-ffmpeg"

	assert.Contains(t, Table(settings), "definitely-not-a-real-ffmpeg (not found)")
}

func TestCmd_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a2t.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model_name: custom-model\ntimeout_sec: 60\n"), 0644))

	settings, err := config.LoadSettings(path)
	require.NoError(t, err)

	out := Table(settings)
	assert.Contains(t, out, "custom-model")
	assert.Contains(t, out, "1m0s")
	assert.Contains(t, out, path)
}
