package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apperrors "flash-asr/internal/app/errors"
)

// Credentials holds the Volcengine application id and access token
type Credentials struct {
	AppID       string `validate:"required"`
	AccessToken string `validate:"required"`
}

// LoadEnv loads environment variables from the first .env file found.
// Variables already present in the process environment are never overridden.
// It returns the path that was loaded, or "" when none exists.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// ResolveCredentials picks each credential from its flag value first and the environment second.
func ResolveCredentials(flagAppID, flagToken string) (*Credentials, error) {
	creds := &Credentials{
		AppID:       firstNonEmpty(flagAppID, os.Getenv(EnvAppID)),
		AccessToken: firstNonEmpty(flagToken, os.Getenv(EnvAccessToken)),
	}

	if creds.AppID == "" || creds.AccessToken == "" {
		return nil, apperrors.New(apperrors.InvalidConfig, fmt.Sprintf(
			"credentials required: set via --appid/--token or environment variables %s and %s",
			EnvAppID, EnvAccessToken))
	}

	if err := Validate(creds); err != nil {
		return nil, err
	}

	return creds, nil
}

// Redact masks all but the last four characters of a secret
func Redact(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
