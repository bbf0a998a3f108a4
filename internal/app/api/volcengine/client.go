package volcengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flash-asr/internal/app/common"
	apperrors "flash-asr/internal/app/errors"
	"flash-asr/internal/config"
)

// Protocol headers
const (
	HeaderAppKey     = "X-Api-App-Key"
	HeaderAccessKey  = "X-Api-Access-Key"
	HeaderResourceID = "X-Api-Resource-Id"
	HeaderRequestID  = "X-Api-Request-Id"
	HeaderSequence   = "X-Api-Sequence"
	HeaderStatusCode = "X-Api-Status-Code"
	HeaderMessage    = "X-Api-Message"
	HeaderLogID      = "X-Tt-Logid"
)

// Vendor status codes
const (
	StatusCodeSuccess = "20000000"
	StatusCodeSilent  = "20000003"
)

const defaultMessage = "Unknown error"

// ClientConfig configures a Client
type ClientConfig struct {
	Endpoint    string
	ResourceID  string
	AppID       string
	AccessToken string
	// Timeout bounds each call when the caller does not pass one
	Timeout time.Duration
}

// Client performs synchronous Flash recognition calls.
// Every Submit makes exactly one HTTP request; nothing is retried or pooled.
type Client struct {
	config       ClientConfig
	client       *http.Client
	logger       *zap.Logger
	newRequestID func() string
}

// NewClient creates a Client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = config.DefaultEndpoint
	}
	if cfg.ResourceID == "" {
		cfg.ResourceID = config.DefaultResourceID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultRequestTimeout
	}

	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DisableKeepAlives: true,
	}

	return &Client{
		config:       cfg,
		client:       &http.Client{Transport: transport},
		logger:       common.OrNop(logger),
		newRequestID: uuid.NewString,
	}
}

// Submit posts body once and interprets the status header.
// timeout bounds the whole exchange; zero uses the configured default.
// Non-success, non-silent statuses come back as a TranscriptionError with the vendor's
// code and message unchanged.
func (c *Client) Submit(ctx context.Context, body *RequestBody, timeout time.Duration) (*Outcome, error) {
	if timeout <= 0 {
		timeout = c.config.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.InvalidArguments, err, "failed to encode request body")
	}

	requestID := c.newRequestID()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.InvalidConfig, err, "failed to create HTTP request")
	}
	c.setHeaders(req, requestID)

	c.logger.Info("Sending request", zap.String("request_id", requestID))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err, timeout)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err, timeout)
	}

	code := resp.Header.Get(HeaderStatusCode)
	message := resp.Header.Get(HeaderMessage)
	if message == "" {
		message = defaultMessage
	}
	logID := resp.Header.Get(HeaderLogID)

	c.logger.Info("Response",
		zap.String("status_code", code),
		zap.String("message", message),
		zap.String("log_id", logID),
		zap.Int("http_status", resp.StatusCode))

	outcome := &Outcome{
		Code:      code,
		Message:   message,
		LogID:     logID,
		RequestID: requestID,
	}

	switch code {
	case StatusCodeSuccess:
		result, err := ParseResult(data)
		if err != nil {
			if logID != "" {
				return nil, apperrors.Wrapf(apperrors.InvalidResponse, err, "invalid success body (log id %s)", logID)
			}
			return nil, apperrors.Wrap(apperrors.InvalidResponse, err, "invalid success body")
		}
		outcome.Status = StatusOK
		outcome.Result = result
		outcome.Raw = json.RawMessage(data)
	case StatusCodeSilent:
		c.logger.Warn("Audio appears to be silent", zap.String("log_id", logID))
		outcome.Status = StatusSilent
		outcome.Result, outcome.Raw = parseLenient(data)
	default:
		return nil, apperrors.Vendor(code, message)
	}

	return outcome, nil
}

func (c *Client) setHeaders(req *http.Request, requestID string) {
	req.Header.Set(HeaderAppKey, c.config.AppID)
	req.Header.Set(HeaderAccessKey, c.config.AccessToken)
	req.Header.Set(HeaderResourceID, c.config.ResourceID)
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set(HeaderSequence, "-1")
	req.Header.Set("Content-Type", "application/json")
}

// parseLenient never fails: a silent response may carry an empty or partial body
func parseLenient(data []byte) (*Result, json.RawMessage) {
	if len(bytes.TrimSpace(data)) == 0 || !json.Valid(data) {
		return &Result{}, json.RawMessage("{}")
	}
	result, err := ParseResult(data)
	if err != nil {
		return &Result{}, json.RawMessage(data)
	}
	return result, json.RawMessage(data)
}

func classifyTransportError(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) || isNetTimeout(err) {
		return apperrors.Wrapf(apperrors.Timeout, err, "request timeout after %s", timeout)
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.Wrap(apperrors.ConnectionFailed, err, "request canceled")
	}
	return apperrors.Wrap(apperrors.ConnectionFailed, err, "connection error")
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
