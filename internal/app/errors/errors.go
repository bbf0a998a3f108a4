package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure of the transcription pipeline.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate in this package.
	KindUnknown Kind = iota
	// InvalidArguments means url and file were both given, or neither was.
	InvalidArguments
	// NotFound means a local input file does not exist.
	NotFound
	// ToolUnavailable means ffmpeg could not be located on PATH.
	ToolUnavailable
	// ConversionFailed means ffmpeg exited non-zero, timed out or produced no output.
	ConversionFailed
	// TooLarge means the input exceeds the hard upload cap.
	TooLarge
	// TranscriptionError means the service answered with a non-success, non-silent status.
	TranscriptionError
	// Timeout means the HTTP exchange exceeded the caller's timeout.
	Timeout
	// ConnectionFailed means the service could not be reached.
	ConnectionFailed
	// InvalidConfig means credentials or settings are missing or malformed.
	InvalidConfig
	// InvalidResponse means a success-status body could not be decoded.
	InvalidResponse
)

var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	InvalidArguments:   "invalid_arguments",
	NotFound:           "not_found",
	ToolUnavailable:    "tool_unavailable",
	ConversionFailed:   "conversion_failed",
	TooLarge:           "too_large",
	TranscriptionError: "transcription_error",
	Timeout:            "timeout",
	ConnectionFailed:   "connection_failed",
	InvalidConfig:      "invalid_config",
	InvalidResponse:    "invalid_response",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error represents a standardized pipeline error.
// Code and Message hold vendor-supplied text verbatim when the failure came from the service.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	cause   error
}

// New creates a new error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new formatted error
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a kind and additional context
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, cause: err}
}

// Wrapf wraps an error with a kind and formatted context
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: err}
}

// Vendor builds a TranscriptionError carrying the service's status code and message untouched.
func Vendor(code, message string) *Error {
	return &Error{Kind: TranscriptionError, Code: code, Message: message}
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error of the same kind.
// A target carrying a Code must match it as well.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels usable with errors.Is.
var (
	ErrInvalidArguments = New(InvalidArguments, "invalid arguments")
	ErrNotFound         = New(NotFound, "file not found")
	ErrToolUnavailable  = New(ToolUnavailable, "conversion tool unavailable")
	ErrConversionFailed = New(ConversionFailed, "conversion failed")
	ErrTooLarge         = New(TooLarge, "file too large")
	ErrTranscription    = New(TranscriptionError, "transcription failed")
	ErrTimeout          = New(Timeout, "request timeout")
	ErrConnectionFailed = New(ConnectionFailed, "connection failed")
	ErrInvalidConfig    = New(InvalidConfig, "invalid configuration")
	ErrInvalidResponse  = New(InvalidResponse, "invalid response")
)

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// As is a shorthand for extracting an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}
