// Package output renders a transcription outcome to stdout or a file.
package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"

	"flash-asr/internal/app/api/volcengine"
	"flash-asr/internal/app/common"
	apperrors "flash-asr/internal/app/errors"
)

// Options selects the rendering
type Options struct {
	// TextOnly writes just the recognized text instead of the response JSON
	TextOnly bool
	// Path writes to a file; empty means the Writer's stdout
	Path string
}

// Writer writes outcomes
type Writer struct {
	stdout io.Writer
	logger *zap.Logger
}

func NewWriter(stdout io.Writer, logger *zap.Logger) *Writer {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Writer{stdout: stdout, logger: common.OrNop(logger)}
}

// Write renders outcome according to opts and logs a one-line summary.
// Stdout output ends with a newline; file output is written exactly as rendered.
func (w *Writer) Write(outcome *volcengine.Outcome, opts Options) error {
	if outcome == nil {
		return apperrors.New(apperrors.InvalidResponse, "no result to write")
	}

	rendered, err := Render(outcome, opts.TextOnly)
	if err != nil {
		return err
	}

	if opts.Path != "" {
		if err := os.WriteFile(opts.Path, rendered, 0644); err != nil {
			return apperrors.Wrapf(apperrors.InvalidArguments, err, "failed to write %s", opts.Path)
		}
		w.logger.Info("Result saved", zap.String("path", opts.Path))
	} else {
		if _, err := w.stdout.Write(append(rendered, '\n')); err != nil {
			return err
		}
	}

	w.logSummary(outcome)
	return nil
}

// Render formats outcome without writing it
func Render(outcome *volcengine.Outcome, textOnly bool) ([]byte, error) {
	if textOnly {
		return []byte(outcome.Result.Text()), nil
	}
	return prettyJSON(outcome.Raw)
}

// prettyJSON re-indents the body as received so field order and unknown fields survive
func prettyJSON(raw json.RawMessage) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, apperrors.Wrap(apperrors.InvalidResponse, err, "response body is not valid JSON")
	}
	return buf.Bytes(), nil
}

func (w *Writer) logSummary(outcome *volcengine.Outcome) {
	w.logger.Info("Summary",
		zap.String("duration", FormatDuration(outcome.Result.Duration())),
		zap.Int("text_length", utf8.RuneCountInString(outcome.Result.Text())),
		zap.Stringer("status", outcome.Status))
}

// FormatDuration renders seconds with one decimal, e.g. "5.2s"
func FormatDuration(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 1, 64) + "s"
}
