package config

import "time"

// Service defaults for the Volcengine big-model Flash recognizer
const (
	DefaultEndpoint   = "https://openspeech.bytedance.com/api/v3/auc/bigmodel/recognize/flash"
	DefaultResourceID = "volc.bigasr.auc_turbo"
	DefaultModelName  = "bigmodel"
	DefaultUID        = "user"

	// Timeout defaults
	DefaultRequestTimeout    = 300 * time.Second
	DefaultConversionTimeout = 300 * time.Second
	MaxRequestTimeout        = 30 * time.Minute

	// Upload limits
	MaxFileSize         int64 = 100 * 1024 * 1024
	RecommendedFileSize int64 = 20 * 1024 * 1024

	DefaultFFmpegBinary = "ffmpeg"
	DefaultSettingsFile = "a2t.yaml"
)

// Environment variable names
const (
	EnvAppID       = "VOLCENGINE_APP_ID"
	EnvAccessToken = "VOLCENGINE_ACCESS_TOKEN"
	EnvSettings    = "A2T_CONFIG"
)

// DefaultSettings returns the settings used when no settings file is present
func DefaultSettings() *Settings {
	return &Settings{
		Endpoint:   DefaultEndpoint,
		ResourceID: DefaultResourceID,
		ModelName:  DefaultModelName,
		UID:        DefaultUID,
		TimeoutSec: DefaultRequestTimeout.Seconds(),
		FFmpegPath: DefaultFFmpegBinary,
	}
}
