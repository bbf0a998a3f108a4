package converter

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// ProgressManager renders a spinner per blocking stage.
// A disabled manager hands out no-op stages.
type ProgressManager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

// Stage is one spinner line
type Stage struct {
	bar     *mpb.Bar
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	return &ProgressManager{
		container: container,
		enabled:   true,
	}
}

func (pm *ProgressManager) Stage(description string) *Stage {
	if pm == nil || !pm.enabled || pm.container == nil {
		return &Stage{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	bar := pm.container.New(0,
		mpb.SpinnerStyle(),
		mpb.PrependDecorators(
			decor.Name(description+" "),
		),
		mpb.AppendDecorators(
			decor.OnAbort(
				decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace), "✓"),
				"✗",
			),
		),
	)

	return &Stage{bar: bar, enabled: true}
}

// Done marks the stage complete
func (s *Stage) Done() {
	if s.enabled && s.bar != nil {
		s.bar.SetTotal(-1, true)
	}
}

// Abort marks the stage failed, leaving its line on screen
func (s *Stage) Abort() {
	if s.enabled && s.bar != nil {
		s.bar.Abort(false)
	}
}

func (pm *ProgressManager) Enabled() bool {
	return pm != nil && pm.enabled
}

// Wait blocks until every stage has completed or aborted and the last frame is drawn
func (pm *ProgressManager) Wait() {
	if pm.Enabled() && pm.container != nil {
		pm.container.Wait()
	}
}

func (pm *ProgressManager) Shutdown() {
	if pm.Enabled() && pm.container != nil {
		pm.container.Shutdown()
	}
}

// IsTTY reports whether writer is a terminal
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok || file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ShouldShowProgress reports whether spinners should be drawn on stderr
func ShouldShowProgress(forced, verbose bool) bool {
	if forced {
		return true
	}
	return !verbose && IsTTY(os.Stderr)
}
