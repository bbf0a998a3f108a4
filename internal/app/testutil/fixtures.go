package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SuccessBody is a typical Flash response with one utterance and extra vendor fields
const SuccessBody = `{
  "audio_info": {"duration": 5230},
  "result": {
    "text": "你好，世界",
    "utterances": [{"text": "你好，世界", "start_time": 120, "end_time": 4980}],
    "additions": {"duration": "5230"}
  }
}`

// SilentBody is what the service typically returns alongside the silent status
const SilentBody = `{"audio_info": {"duration": 3000}, "result": {"text": ""}}`

// WriteFile creates name inside a fresh temp directory with content and returns its path
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteSparseFile creates a file of the given size without allocating its content
func WriteSparseFile(t *testing.T, name string, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := f.Truncate(size); err != nil {
		t.Fatalf("failed to size %s: %v", path, err)
	}
	return path
}

// TempFiles lists files in dir whose names match pattern
func TempFiles(t *testing.T, dir, pattern string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		t.Fatalf("bad glob %q: %v", pattern, err)
	}
	return matches
}
