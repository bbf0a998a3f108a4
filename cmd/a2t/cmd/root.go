package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	configcmd "flash-asr/cmd/a2t/cmd/config"
	"flash-asr/cmd/a2t/cmd/formats"
	"flash-asr/cmd/a2t/cmd/transcribe"
	"flash-asr/cmd/a2t/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "a2t",
	Short: "Transcribe audio or video with the Volcengine Doubao Flash recognizer",
	Long: `Transcribe audio or video with the Volcengine Doubao big-model Flash recognizer.

- Send a URL and let the service fetch the audio
- Or send a local audio file, uploaded inline
- Video files are converted to mono 16 kHz mp3 with FFmpeg first

Credentials come from --appid/--token or VOLCENGINE_APP_ID / VOLCENGINE_ACCESS_TOKEN
(a .env file in the working directory is loaded automatically).`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and runs it.
// Ctrl-C cancels a running conversion or request; temporary audio is still removed.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(formats.Cmd)
	rootCmd.AddCommand(configcmd.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
