package formats

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"flash-asr/cmd/a2t/cmd/table"
	"flash-asr/internal/app/audio"
	"flash-asr/internal/config"
)

// Cmd represents the formats command
var Cmd = &cobra.Command{
	Use:   "formats",
	Short: "List the file extensions a2t recognizes",
	Long: `List the file extensions a2t recognizes.

Audio files are uploaded as they are. Video files have their audio track extracted
with FFmpeg first. Any other extension is sent as audio with a warning.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), Table())
		return nil
	},
}

// Table renders the supported extensions
func Table() string {
	limit := fmt.Sprintf("uploads over %dMB are rejected", config.MaxFileSize/(1024*1024))
	rows := [][]string{
		{audio.Audio.String(), strings.Join(audio.AudioExtensions(), ", "), limit},
		{audio.Video.String(), strings.Join(audio.VideoExtensions(), ", "), "requires FFmpeg"},
	}
	return table.Render([]string{"Category", "Extensions", "Notes"}, rows)
}
