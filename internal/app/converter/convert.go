package converter

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"flash-asr/internal/app/api/volcengine"
	"flash-asr/internal/app/audio"
	"flash-asr/internal/app/common"
	apperrors "flash-asr/internal/app/errors"
)

// Submitter sends one request body to the recognizer
type Submitter interface {
	Submit(ctx context.Context, body *volcengine.RequestBody, timeout time.Duration) (*volcengine.Outcome, error)
}

// AudioExtractor turns a video into an audio file; dest may be empty for a temp file
type AudioExtractor interface {
	Extract(ctx context.Context, videoPath, dest string) (string, error)
}

// Request is a single transcription job. Exactly one of URL and File must be set.
type Request struct {
	URL  string
	File string
	// Timeout bounds the HTTP exchange; zero uses the client default
	Timeout time.Duration
	// KeepTemp retains audio extracted from a video input
	KeepTemp bool
}

func (r Request) validate() error {
	if r.URL == "" && r.File == "" {
		return apperrors.New(apperrors.InvalidArguments, "Either 'url' or 'file' must be provided")
	}
	if r.URL != "" && r.File != "" {
		return apperrors.New(apperrors.InvalidArguments, "Provide either 'url' or 'file', not both")
	}
	if r.Timeout < 0 {
		return apperrors.New(apperrors.InvalidArguments, "timeout must not be negative")
	}
	return nil
}

// Converter runs the transcription pipeline:
// classify, extract audio from video, build the payload, submit once.
type Converter struct {
	client    Submitter
	extractor AudioExtractor
	payloads  *volcengine.PayloadBuilder
	progress  *ProgressManager
	logger    *zap.Logger
}

// NewConverter creates a Converter
func NewConverter(client Submitter, extractor AudioExtractor, payloads *volcengine.PayloadBuilder, logger *zap.Logger) *Converter {
	logger = common.OrNop(logger)
	if payloads == nil {
		payloads = volcengine.NewPayloadBuilder("", "", logger)
	}
	return &Converter{
		client:    client,
		extractor: extractor,
		payloads:  payloads,
		progress:  NewProgressManager(ProgressConfig{Enabled: false}),
		logger:    logger,
	}
}

// WithProgress shows a spinner for the blocking stages
func (c *Converter) WithProgress(pm *ProgressManager) *Converter {
	if pm != nil {
		c.progress = pm
	}
	return c
}

// Transcribe runs one request to completion.
// Audio extracted from a video is deleted before returning, on every path, unless
// req.KeepTemp is set. A silent result is returned as an Outcome, not an error.
func (c *Converter) Transcribe(ctx context.Context, req Request) (*volcengine.Outcome, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	assets := &tempAssets{logger: c.logger}
	defer assets.release(req.KeepTemp)

	var (
		body *volcengine.RequestBody
		err  error
	)
	if req.File != "" {
		body, err = c.fileBody(ctx, req.File, assets)
		if err != nil {
			return nil, err
		}
	} else {
		body = c.payloads.FromURL(req.URL)
	}
	c.logger.Debug("pipeline", zap.String("state", "payload_built"))

	stage := c.progress.Stage("Transcribing")
	outcome, err := c.client.Submit(ctx, body, req.Timeout)
	if err != nil {
		stage.Abort()
		c.logger.Debug("pipeline", zap.String("state", "failed"))
		return nil, err
	}
	stage.Done()

	c.logger.Debug("pipeline", zap.String("state", outcome.Status.String()))
	return outcome, nil
}

func (c *Converter) fileBody(ctx context.Context, path string, assets *tempAssets) (*volcengine.RequestBody, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.Newf(apperrors.NotFound, "File not found: %s", path)
	}

	category := audio.Classify(path)
	c.logger.Debug("pipeline", zap.String("state", "classified"), zap.Stringer("category", category))

	switch category {
	case audio.Video:
		c.logger.Info("Detected video file", zap.String("path", path))
		if c.extractor == nil {
			return nil, apperrors.New(apperrors.ToolUnavailable, "no audio extractor configured")
		}

		stage := c.progress.Stage("Extracting audio")
		extracted, err := c.extractor.Extract(ctx, path, "")
		if err != nil {
			stage.Abort()
			return nil, err
		}
		stage.Done()

		assets.add(extracted)
		path = extracted
		c.logger.Debug("pipeline", zap.String("state", "converted"))
	case audio.Unknown:
		c.logger.Warn("Unknown file type, attempting as audio", zap.String("path", path))
	default:
		c.logger.Debug("pipeline", zap.String("state", "skip_conversion"))
	}

	return c.payloads.FromFile(path)
}

// tempAssets tracks files created during one Transcribe call
type tempAssets struct {
	paths  []string
	logger *zap.Logger
}

func (a *tempAssets) add(path string) {
	a.paths = append(a.paths, path)
}

func (a *tempAssets) release(keep bool) {
	if keep {
		for _, path := range a.paths {
			a.logger.Info("Keeping temporary audio file", zap.String("path", path))
		}
		return
	}

	for _, path := range a.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			a.logger.Warn("Failed to cleanup temp file", zap.String("path", path), zap.Error(err))
			continue
		}
		a.logger.Debug("Cleaned up temp file", zap.String("path", path))
	}
	a.paths = nil
}
