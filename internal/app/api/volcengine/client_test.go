package volcengine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	apperrors "flash-asr/internal/app/errors"
	"flash-asr/internal/app/testutil"
)

func newTestClient(endpoint string) *Client {
	return NewClient(ClientConfig{
		Endpoint:    endpoint,
		AppID:       "app-123",
		AccessToken: "token-456",
	}, nil)
}

func urlBody() *RequestBody {
	return NewPayloadBuilder("", "", nil).FromURL("https://example.com/a.mp3")
}

func TestSubmitSuccess(t *testing.T) {
	srv := testutil.NewFlashServer(t, testutil.FlashReply{
		Code:    StatusCodeSuccess,
		Message: "OK",
		LogID:   "20250101-log",
		Body:    testutil.SuccessBody,
	})

	outcome, err := newTestClient(srv.URL).Submit(context.Background(), urlBody(), time.Second)
	require.NoError(t, err)

	assert.Equal(t, StatusOK, outcome.Status)
	assert.False(t, outcome.Silent())
	assert.Equal(t, StatusCodeSuccess, outcome.Code)
	assert.Equal(t, "OK", outcome.Message)
	assert.Equal(t, "20250101-log", outcome.LogID)
	assert.Equal(t, "你好，世界", outcome.Result.Text())
	assert.InDelta(t, 5.23, outcome.Result.Duration(), 1e-9)
	assert.JSONEq(t, testutil.SuccessBody, string(outcome.Raw))
	assert.Equal(t, 1, srv.RequestCount())
}

func TestSubmitHeaders(t *testing.T) {
	srv := testutil.NewFlashServer(t, testutil.FlashReply{Code: StatusCodeSuccess, Body: `{}`})
	client := NewClient(ClientConfig{
		Endpoint:    srv.URL,
		ResourceID:  "volc.bigasr.auc_turbo",
		AppID:       "app-123",
		AccessToken: "token-456",
	}, nil)

	first, err := client.Submit(context.Background(), urlBody(), time.Second)
	require.NoError(t, err)
	second, err := client.Submit(context.Background(), urlBody(), time.Second)
	require.NoError(t, err)

	requests := srv.Requests()
	require.Len(t, requests, 2)

	req := requests[0]
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "app-123", req.Header.Get(HeaderAppKey))
	assert.Equal(t, "token-456", req.Header.Get(HeaderAccessKey))
	assert.Equal(t, "volc.bigasr.auc_turbo", req.Header.Get(HeaderResourceID))
	assert.Equal(t, "-1", req.Header.Get(HeaderSequence))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	firstID := requests[0].Header.Get(HeaderRequestID)
	secondID := requests[1].Header.Get(HeaderRequestID)
	_, err = uuid.Parse(firstID)
	assert.NoError(t, err)
	assert.NotEqual(t, firstID, secondID, "each call gets a fresh request id")
	assert.Equal(t, firstID, first.RequestID)
	assert.Equal(t, secondID, second.RequestID)

	assert.Equal(t, map[string]interface{}{
		"user":    map[string]interface{}{"uid": "user"},
		"audio":   map[string]interface{}{"url": "https://example.com/a.mp3"},
		"request": map[string]interface{}{"model_name": "bigmodel"},
	}, req.Body)
}

func TestSubmitSilent(t *testing.T) {
	bodies := map[string]string{
		"typical body": testutil.SilentBody,
		"empty body":   "",
		"not json":     "no speech",
		"json array":   `[1, 2, 3]`,
		"missing text": `{"audio_info": {"duration": 800}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := testutil.NewFlashServer(t, testutil.FlashReply{
				Code:    StatusCodeSilent,
				Message: "silent audio",
				Body:    body,
			})
			logger, logs := testutil.NewObservedLogger()
			client := NewClient(ClientConfig{Endpoint: srv.URL}, logger)

			outcome, err := client.Submit(context.Background(), urlBody(), time.Second)
			require.NoError(t, err, "silent is not a failure")

			assert.Equal(t, StatusSilent, outcome.Status)
			assert.True(t, outcome.Silent())
			require.NotNil(t, outcome.Result)
			assert.NotPanics(t, func() { _ = outcome.Result.Text() })
			assert.Equal(t, "", outcome.Result.Text())
			assert.NotEmpty(t, outcome.Raw)
			assert.Contains(t, testutil.Messages(logs, zapcore.WarnLevel), "Audio appears to be silent")
		})
	}
}

func TestSubmitFailureKeepsVendorText(t *testing.T) {
	tests := []struct {
		name            string
		code            string
		message         string
		expectedMessage string
	}{
		{name: "bad request", code: "45000001", message: "bad request", expectedMessage: "bad request"},
		{name: "server busy", code: "55000031", message: "server is busy", expectedMessage: "server is busy"},
		{name: "message header missing", code: "45000151", expectedMessage: "Unknown error"},
		{name: "status header missing", code: "", message: "gateway says no", expectedMessage: "gateway says no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewFlashServer(t, testutil.FlashReply{
				Code:    tt.code,
				Message: tt.message,
				Body:    `{"result": {"text": "should be ignored"}}`,
			})

			outcome, err := newTestClient(srv.URL).Submit(context.Background(), urlBody(), time.Second)
			require.Error(t, err)
			assert.Nil(t, outcome)

			vendorErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.TranscriptionError, vendorErr.Kind)
			assert.Equal(t, tt.code, vendorErr.Code)
			assert.Equal(t, tt.expectedMessage, vendorErr.Message)
			assert.Equal(t, 1, srv.RequestCount(), "no retry")
		})
	}
}

func TestSubmitSuccessWithExtraFieldTypes(t *testing.T) {
	body := `{"audio_info":{"duration":5230},"result":{"text":"hello","utterances":[{"text":"hello","start_time":120.5,"end_time":"4980"}]}}`
	srv := testutil.NewFlashServer(t, testutil.FlashReply{Code: StatusCodeSuccess, Body: body})

	outcome, err := newTestClient(srv.URL).Submit(context.Background(), urlBody(), time.Second)
	require.NoError(t, err)

	assert.Equal(t, StatusOK, outcome.Status)
	assert.Equal(t, "hello", outcome.Result.Text())
	assert.InDelta(t, 5.23, outcome.Result.Duration(), 1e-9)
	assert.JSONEq(t, body, string(outcome.Raw))
}

func TestSubmitSuccessWithUnparseableBody(t *testing.T) {
	tests := []struct {
		name    string
		logID   string
		message string
	}{
		{name: "with log id", logID: "log-42", message: "invalid success body (log id log-42)"},
		{name: "without log id", message: "invalid success body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewFlashServer(t, testutil.FlashReply{
				Code:  StatusCodeSuccess,
				LogID: tt.logID,
				Body:  "<html>oops</html>",
			})

			_, err := newTestClient(srv.URL).Submit(context.Background(), urlBody(), time.Second)
			require.Error(t, err)
			assert.Equal(t, apperrors.InvalidResponse, apperrors.KindOf(err))

			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, appErr.Message)
			assert.NotContains(t, err.Error(), "log id :")
		})
	}
}

func TestSubmitTimeout(t *testing.T) {
	srv := testutil.NewFlashServer(t, testutil.FlashReply{
		Code:  StatusCodeSuccess,
		Body:  `{}`,
		Delay: 5 * time.Second,
	})

	start := time.Now()
	_, err := newTestClient(srv.URL).Submit(context.Background(), urlBody(), 100*time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, apperrors.Timeout, apperrors.KindOf(err))
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Equal(t, 1, srv.RequestCount())
}

func TestSubmitConnectionFailed(t *testing.T) {
	srv := testutil.NewFlashServer(t, testutil.FlashReply{})
	endpoint := srv.URL
	srv.Close()

	_, err := newTestClient(endpoint).Submit(context.Background(), urlBody(), time.Second)
	require.Error(t, err)
	assert.Equal(t, apperrors.ConnectionFailed, apperrors.KindOf(err))
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(ClientConfig{}, nil)
	assert.Equal(t, "https://openspeech.bytedance.com/api/v3/auc/bigmodel/recognize/flash", client.config.Endpoint)
	assert.Equal(t, "volc.bigasr.auc_turbo", client.config.ResourceID)
	assert.Equal(t, 300*time.Second, client.config.Timeout)
}
