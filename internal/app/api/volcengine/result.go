package volcengine

import (
	"encoding/json"
	"fmt"
)

// Status tags a completed call. Failed calls are reported as errors, never as an Outcome.
type Status int

const (
	// StatusOK means speech was recognized
	StatusOK Status = iota
	// StatusSilent means the call succeeded but no speech was detected
	StatusSilent
)

func (s Status) String() string {
	if s == StatusSilent {
		return "silent"
	}
	return "success"
}

// Outcome is the result of one accepted Flash call
type Outcome struct {
	Status    Status
	Code      string
	Message   string
	LogID     string
	RequestID string

	// Result is never nil; fields the service omitted stay nil inside it
	Result *Result

	// Raw is the response body as received, for pass-through output
	Raw json.RawMessage
}

// Silent reports whether the service flagged the audio as containing no speech
func (o *Outcome) Silent() bool {
	return o.Status == StatusSilent
}

// Result is the response body schema. Pointer fields make absence explicit.
type Result struct {
	AudioInfo *AudioInfo   `json:"audio_info,omitempty"`
	Result    *Recognition `json:"result,omitempty"`
}

// AudioInfo describes the submitted audio
type AudioInfo struct {
	// Duration in milliseconds
	Duration *float64 `json:"duration,omitempty"`
}

// Recognition holds the recognized text. Utterances and additions are left to Outcome.Raw.
type Recognition struct {
	Text *string `json:"text,omitempty"`
}

// ParseResult decodes a response body
func ParseResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse response body: %w", err)
	}
	return &r, nil
}

// HasText reports whether result.text was present
func (r *Result) HasText() bool {
	return r != nil && r.Result != nil && r.Result.Text != nil
}

// HasDuration reports whether audio_info.duration was present
func (r *Result) HasDuration() bool {
	return r != nil && r.AudioInfo != nil && r.AudioInfo.Duration != nil
}

// Text returns the recognized text, or "" when absent at any level
func (r *Result) Text() string {
	if !r.HasText() {
		return ""
	}
	return *r.Result.Text
}

// Duration returns the audio duration in seconds, or 0 when absent
func (r *Result) Duration() float64 {
	if !r.HasDuration() {
		return 0
	}
	return *r.AudioInfo.Duration / 1000
}
