package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FFmpegMode selects how the fake ffmpeg behaves
type FFmpegMode string

const (
	// FFmpegOK writes a small file to the output path and exits 0
	FFmpegOK FFmpegMode = "ok"
	// FFmpegFail prints to stderr and exits 1
	FFmpegFail FFmpegMode = "fail"
	// FFmpegNoOutput exits 0 without writing anything
	FFmpegNoOutput FFmpegMode = "noout"
	// FFmpegHang sleeps far past any test timeout
	FFmpegHang FFmpegMode = "hang"
)

const fakeFFmpegScript = `#!/bin/sh
for last; do :; done
echo "$@" > "$FAKE_FFMPEG_ARGS"
case "$FAKE_FFMPEG_MODE" in
  fail) echo "Invalid data found when processing input" >&2; exit 1 ;;
  noout) exit 0 ;;
  hang) exec sleep 30 ;;
esac
printf 'ID3fake-audio' > "$last"
`

// InstallFakeFFmpeg puts a scripted ffmpeg first on PATH for the duration of t.
// It returns the file in which the script records its last argument list.
func InstallFakeFFmpeg(t *testing.T, mode FFmpegMode) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ffmpeg relies on a POSIX shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(script, []byte(fakeFFmpegScript), 0755); err != nil {
		t.Fatalf("failed to write fake ffmpeg: %v", err)
	}

	argsFile := filepath.Join(dir, "args.txt")
	t.Setenv("FAKE_FFMPEG_MODE", string(mode))
	t.Setenv("FAKE_FFMPEG_ARGS", argsFile)
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return argsFile
}

// HideFFmpeg points PATH at an empty directory so ffmpeg cannot be found
func HideFFmpeg(t *testing.T) {
	t.Helper()
	t.Setenv("PATH", t.TempDir())
}
