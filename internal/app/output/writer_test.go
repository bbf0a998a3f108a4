package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"flash-asr/internal/app/api/volcengine"
	apperrors "flash-asr/internal/app/errors"
	"flash-asr/internal/app/testutil"
)

func successOutcome(t *testing.T) *volcengine.Outcome {
	t.Helper()
	result, err := volcengine.ParseResult([]byte(testutil.SuccessBody))
	require.NoError(t, err)
	return &volcengine.Outcome{
		Status: volcengine.StatusOK,
		Result: result,
		Raw:    json.RawMessage(testutil.SuccessBody),
	}
}

func TestWrite_Stdout(t *testing.T) {
	tests := []struct {
		name     string
		textOnly bool
		check    func(t *testing.T, out string)
	}{
		{
			name:     "text_only",
			textOnly: true,
			check: func(t *testing.T, out string) {
				assert.Equal(t, "你好，世界\n", out)
			},
		},
		{
			name: "pretty_json_keeps_unknown_fields",
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "\n  \"audio_info\": {")
				assert.Contains(t, out, "\"additions\"")
				assert.Contains(t, out, "你好，世界")
				assert.True(t, json.Valid([]byte(out)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			w := NewWriter(&stdout, nil)

			require.NoError(t, w.Write(successOutcome(t), Options{TextOnly: tt.textOnly}))
			tt.check(t, stdout.String())
		})
	}
}

func TestWrite_File(t *testing.T) {
	var stdout bytes.Buffer
	path := filepath.Join(t.TempDir(), "result.txt")
	w := NewWriter(&stdout, nil)

	require.NoError(t, w.Write(successOutcome(t), Options{TextOnly: true, Path: path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "你好，世界", string(data))
	assert.Empty(t, stdout.String())
}

func TestWrite_FileError(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, nil)
	path := filepath.Join(t.TempDir(), "missing-dir", "out.json")

	err := w.Write(successOutcome(t), Options{Path: path})
	assert.Error(t, err)
}

func TestWrite_SilentWithEmptyBody(t *testing.T) {
	var stdout bytes.Buffer
	w := NewWriter(&stdout, nil)
	outcome := &volcengine.Outcome{Status: volcengine.StatusSilent, Result: &volcengine.Result{}}

	require.NoError(t, w.Write(outcome, Options{}))
	assert.Equal(t, "{}\n", stdout.String())

	stdout.Reset()
	require.NoError(t, w.Write(outcome, Options{TextOnly: true}))
	assert.Equal(t, "\n", stdout.String())
}

func TestWrite_NilOutcome(t *testing.T) {
	err := NewWriter(&bytes.Buffer{}, nil).Write(nil, Options{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidResponse)
}

func TestWrite_Summary(t *testing.T) {
	logger, logs := testutil.NewObservedLogger()
	w := NewWriter(&bytes.Buffer{}, logger)

	require.NoError(t, w.Write(successOutcome(t), Options{}))

	summaries := logs.FilterMessage("Summary").All()
	require.Len(t, summaries, 1)
	assert.Equal(t, zapcore.InfoLevel, summaries[0].Level)
	fields := summaries[0].ContextMap()
	assert.Equal(t, "5.2s", fields["duration"])
	assert.EqualValues(t, 5, fields["text_length"])
}

func TestRender_InvalidJSON(t *testing.T) {
	outcome := &volcengine.Outcome{Result: &volcengine.Result{}, Raw: json.RawMessage("{not json")}

	_, err := Render(outcome, false)
	assert.ErrorIs(t, err, apperrors.ErrInvalidResponse)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.0s", FormatDuration(0))
	assert.Equal(t, "5.2s", FormatDuration(5.23))
	assert.Equal(t, "61.0s", FormatDuration(60.96))
}
