package transcribe

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flash-asr/internal/app/api/volcengine"
	"flash-asr/internal/app/audio"
	"flash-asr/internal/app/common"
	"flash-asr/internal/app/converter"
	apperrors "flash-asr/internal/app/errors"
	"flash-asr/internal/app/output"
	"flash-asr/internal/config"
)

// Options are the flag values of one invocation
type Options struct {
	URL        string
	File       string
	AppID      string
	Token      string
	Output     string
	ConfigPath string
	TextOnly   bool
	KeepTemp   bool
	Progress   bool
	Verbose    bool
	// Timeout overrides the settings file when non-zero
	Timeout time.Duration
}

var (
	opts       Options
	timeoutSec float64
)

func init() {
	Cmd.Flags().StringVar(&opts.URL, "url", "", "Audio file URL")
	Cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Local audio or video file path")
	Cmd.Flags().StringVar(&opts.AppID, "appid", "", "Volcengine App ID (default: env VOLCENGINE_APP_ID)")
	Cmd.Flags().StringVar(&opts.Token, "token", "", "Volcengine Access Token (default: env VOLCENGINE_ACCESS_TOKEN)")
	Cmd.Flags().BoolVar(&opts.TextOnly, "text-only", false, "Output text only")
	Cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file path")
	Cmd.Flags().Float64Var(&timeoutSec, "timeout", config.DefaultRequestTimeout.Seconds(), "Request timeout in seconds")
	Cmd.Flags().BoolVar(&opts.KeepTemp, "keep-temp", false, "Keep temporary audio file (for video input)")
	Cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "settings file (default $A2T_CONFIG or ./a2t.yaml)")
	Cmd.Flags().BoolVar(&opts.Progress, "progress", false, "show progress spinners even when stderr is not a terminal")

	Cmd.MarkFlagsMutuallyExclusive("url", "file")
	Cmd.MarkFlagsOneRequired("url", "file")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe one audio or video file, or a URL",
	Long: `Transcribe one audio or video file, or a URL, with the Flash recognizer.

The full response is printed as JSON unless --text-only is given.`,
	Example: `  a2t transcribe --url "https://example.com/audio.mp3"
  a2t transcribe --file ./recording.mp3 --text-only
  a2t transcribe -f ./video.mp4 -o result.json
  a2t transcribe -f ./audio.mp3 --appid YOUR_ID --token YOUR_TOKEN`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger, err := common.NewLogger(verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		run := opts
		run.Verbose = verbose
		if cmd.Flags().Changed("timeout") {
			run.Timeout = time.Duration(timeoutSec * float64(time.Second))
		}

		if err := Run(cmd.Context(), run, cmd.OutOrStdout(), logger); err != nil {
			Report(logger, err)
			return err
		}
		return nil
	},
}

// Run resolves configuration, transcribes once and writes the result
func Run(ctx context.Context, opts Options, stdout io.Writer, logger *zap.Logger) error {
	logger = common.OrNop(logger)

	creds, err := config.ResolveCredentials(opts.AppID, opts.Token)
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}
	if settings.Source != "" {
		logger.Debug("Loaded settings", zap.String("path", settings.Source))
	}

	timeout := settings.Timeout()
	if opts.Timeout != 0 {
		if err := config.ValidateTimeout(opts.Timeout, "request"); err != nil {
			return err
		}
		timeout = opts.Timeout
	}

	extractor := audio.NewExtractor(settings.FFmpegPath, settings.TempDir, logger)
	extractor.Timeout = config.DefaultConversionTimeout

	client := volcengine.NewClient(volcengine.ClientConfig{
		Endpoint:    settings.Endpoint,
		ResourceID:  settings.ResourceID,
		AppID:       creds.AppID,
		AccessToken: creds.AccessToken,
		Timeout:     timeout,
	}, logger)
	payloads := volcengine.NewPayloadBuilder(settings.UID, settings.ModelName, logger)

	progress := converter.NewProgressManager(converter.ProgressConfig{
		Enabled: converter.ShouldShowProgress(opts.Progress, opts.Verbose),
	})
	conv := converter.NewConverter(client, extractor, payloads, logger).WithProgress(progress)

	outcome, err := conv.Transcribe(ctx, converter.Request{
		URL:      opts.URL,
		File:     opts.File,
		Timeout:  timeout,
		KeepTemp: opts.KeepTemp,
	})
	progress.Wait()
	if err != nil {
		return err
	}

	return output.NewWriter(stdout, logger).Write(outcome, output.Options{
		TextOnly: opts.TextOnly,
		Path:     opts.Output,
	})
}

// Report logs err with an operator hint chosen by its kind
func Report(logger *zap.Logger, err error) {
	fields := []zap.Field{zap.Error(err)}
	if hint := Hint(err); hint != "" {
		fields = append(fields, zap.String("hint", hint))
	}
	common.OrNop(logger).Error(headline(err), fields...)
}

func headline(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.NotFound:
		return "File not found"
	case apperrors.ToolUnavailable:
		return "FFmpeg is required for video file processing"
	case apperrors.ConversionFailed:
		return "Audio extraction failed"
	case apperrors.TranscriptionError:
		return "Transcription failed"
	case apperrors.Timeout:
		return "Request timeout"
	case apperrors.ConnectionFailed:
		return "Connection error"
	case apperrors.InvalidConfig:
		return "Configuration error"
	case apperrors.InvalidArguments, apperrors.TooLarge:
		return "Invalid input"
	case apperrors.InvalidResponse:
		return "Unexpected response"
	default:
		return "Unexpected error"
	}
}

// Hint suggests what the operator can do about err
func Hint(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.Timeout:
		return "try increasing --timeout for large files"
	case apperrors.TooLarge:
		return "upload the file somewhere reachable and pass --url instead"
	case apperrors.ToolUnavailable:
		return "install FFmpeg or set ffmpeg_path in a2t.yaml"
	case apperrors.InvalidConfig:
		return "check the settings file, and set " + config.EnvAppID + "/" + config.EnvAccessToken + " or pass --appid/--token"
	case apperrors.ConnectionFailed:
		return "check network access to the endpoint"
	default:
		return ""
	}
}
