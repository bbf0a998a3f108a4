package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"flash-asr/cmd/a2t/cmd/table"
	"flash-asr/internal/config"
)

var configPath string

func init() {
	Cmd.Flags().StringVar(&configPath, "config", "", "settings file (default $A2T_CONFIG or ./a2t.yaml)")
}

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration: settings file values merged with defaults,
and which credentials were found. Secrets are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings(configPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), Table(settings))
		return nil
	},
}

// Table renders settings and the credential environment, masking secrets
func Table(settings *config.Settings) string {
	source := settings.Source
	if source == "" {
		source = "(built-in defaults)"
	}

	tempDir := settings.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	rows := [][]string{
		{"settings file", source},
		{"endpoint", settings.Endpoint},
		{"resource_id", settings.ResourceID},
		{"model_name", settings.ModelName},
		{"uid", settings.UID},
		{"timeout", settings.Timeout().String()},
		{"ffmpeg_path", ffmpegStatus(settings.FFmpegPath)},
		{"temp_dir", tempDir},
		{config.EnvAppID, secretStatus(os.Getenv(config.EnvAppID))},
		{config.EnvAccessToken, secretStatus(os.Getenv(config.EnvAccessToken))},
	}
	return table.Render([]string{"Key", "Value"}, rows)
}

func ffmpegStatus(binary string) string {
	path, err := exec.LookPath(binary)
	if err != nil {
		return binary + " (not found)"
	}
	return path
}

func secretStatus(value string) string {
	if value == "" {
		return "(not set)"
	}
	return config.Redact(value)
}
