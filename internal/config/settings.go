package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "flash-asr/internal/app/errors"
)

// Settings holds the non-secret knobs of the recognizer client.
// It is read from a YAML file; fields left empty fall back to DefaultSettings.
type Settings struct {
	Endpoint   string  `yaml:"endpoint" validate:"required,url"`
	ResourceID string  `yaml:"resource_id" validate:"required"`
	ModelName  string  `yaml:"model_name" validate:"required"`
	UID        string  `yaml:"uid" validate:"required"`
	TimeoutSec float64 `yaml:"timeout_sec" validate:"gt=0,lte=1800"`
	FFmpegPath string  `yaml:"ffmpeg_path" validate:"required"`
	TempDir    string  `yaml:"temp_dir,omitempty"`

	// Path the settings were loaded from, empty for built-in defaults
	Source string `yaml:"-"`
}

// Timeout returns the request timeout as a duration
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec * float64(time.Second))
}

// LoadSettings loads settings from path.
// With an empty path it tries $A2T_CONFIG and then ./a2t.yaml, returning defaults when
// neither exists. An explicit path that does not exist is an error.
func LoadSettings(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvSettings)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultSettingsFile
	}

	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, apperrors.Newf(apperrors.InvalidConfig, "config file not found: %s", path)
		}
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.InvalidConfig, err, "failed to read config file %s", path)
	}

	settings, err := ParseSettings(data)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.InvalidConfig, err, "failed to load %s", path)
	}
	settings.Source = path

	return settings, nil
}

// ParseSettings decodes YAML settings, expands ${VAR} references, fills defaults and validates.
func ParseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	settings.expandEnvironmentVariables()
	settings.setDefaults()

	if err := Validate(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func (s *Settings) expandEnvironmentVariables() {
	s.Endpoint = os.ExpandEnv(s.Endpoint)
	s.ResourceID = os.ExpandEnv(s.ResourceID)
	s.ModelName = os.ExpandEnv(s.ModelName)
	s.UID = os.ExpandEnv(s.UID)
	s.FFmpegPath = os.ExpandEnv(s.FFmpegPath)
	s.TempDir = os.ExpandEnv(s.TempDir)
}

func (s *Settings) setDefaults() {
	defaults := DefaultSettings()
	if s.Endpoint == "" {
		s.Endpoint = defaults.Endpoint
	}
	if s.ResourceID == "" {
		s.ResourceID = defaults.ResourceID
	}
	if s.ModelName == "" {
		s.ModelName = defaults.ModelName
	}
	if s.UID == "" {
		s.UID = defaults.UID
	}
	if s.TimeoutSec == 0 {
		s.TimeoutSec = defaults.TimeoutSec
	}
	if s.FFmpegPath == "" {
		s.FFmpegPath = defaults.FFmpegPath
	}
}
