package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flash-asr/internal/app/common"
	apperrors "flash-asr/internal/app/errors"
)

// DefaultExtractTimeout bounds a single ffmpeg run
const DefaultExtractTimeout = 300 * time.Second

const installHint = "FFmpeg is required for video processing. " +
	"Install from https://ffmpeg.org or via package manager:\n" +
	"  - Windows: winget install ffmpeg\n" +
	"  - macOS: brew install ffmpeg\n" +
	"  - Linux: apt install ffmpeg"

// Extractor pulls a mono 16 kHz audio track out of a video file with ffmpeg
type Extractor struct {
	Binary  string
	Timeout time.Duration
	TempDir string
	logger  *zap.Logger
}

// NewExtractor creates an Extractor. An empty binary means "ffmpeg" on PATH,
// an empty tempDir means os.TempDir().
func NewExtractor(binary, tempDir string, logger *zap.Logger) *Extractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Extractor{
		Binary:  binary,
		Timeout: DefaultExtractTimeout,
		TempDir: tempDir,
		logger:  common.OrNop(logger),
	}
}

// LookPath resolves the ffmpeg binary, failing with ToolUnavailable when it cannot be found
func (e *Extractor) LookPath() (string, error) {
	path, err := exec.LookPath(e.Binary)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ToolUnavailable, err, installHint)
	}
	return path, nil
}

// Extract writes the audio track of videoPath to dest and returns the written path.
// With an empty dest a uniquely named mp3 is created in the temp directory and the
// caller owns it. The source video is never modified.
func (e *Extractor) Extract(ctx context.Context, videoPath, dest string) (string, error) {
	binary, err := e.LookPath()
	if err != nil {
		return "", err
	}

	generated := dest == ""
	if generated {
		dest = e.tempPath("mp3")
	}

	e.logger.Info("Extracting audio from video", zap.String("video", videoPath))

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultExtractTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binary, extractArgs(videoPath, dest)...)
	cmd.WaitDelay = 5 * time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil || !fileExists(dest) {
		if generated {
			_ = os.Remove(dest)
		}
	}

	if runErr != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return "", apperrors.Newf(apperrors.ConversionFailed,
				"FFmpeg timeout after %s: video file may be too large", timeout)
		}
		return "", apperrors.Wrapf(apperrors.ConversionFailed, runErr,
			"FFmpeg error: %s", strings.TrimSpace(stderr.String()))
	}

	if !fileExists(dest) {
		return "", apperrors.New(apperrors.ConversionFailed, "Audio extraction failed: output file not created")
	}

	e.logger.Info("Audio extracted", zap.String("path", dest))
	return dest, nil
}

func (e *Extractor) tempPath(format string) string {
	dir := e.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return filepath.Join(dir, fmt.Sprintf("audio_%s.%s", id, format))
}

// extractArgs builds the ffmpeg argument list; the codec follows the destination format
func extractArgs(input, output string) []string {
	codec := "pcm_s16le"
	if strings.EqualFold(filepath.Ext(output), ".mp3") {
		codec = "libmp3lame"
	}

	return []string{
		"-i", input,
		"-vn",
		"-acodec", codec,
		"-ar", "16000",
		"-ac", "1",
		"-y",
		output,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
