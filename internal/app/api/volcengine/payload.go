package volcengine

import (
	"encoding/base64"
	"fmt"
	"os"

	"go.uber.org/zap"

	"flash-asr/internal/app/common"
	apperrors "flash-asr/internal/app/errors"
	"flash-asr/internal/config"
)

const bytesPerMB = 1024 * 1024

// RequestBody is the JSON document posted to the Flash endpoint
type RequestBody struct {
	User    User       `json:"user"`
	Audio   AudioInput `json:"audio"`
	Request Options    `json:"request"`
}

// User identifies the caller to the service
type User struct {
	UID string `json:"uid"`
}

// AudioInput carries exactly one of a remote URL or base64 encoded file content
type AudioInput struct {
	URL  string `json:"url,omitempty"`
	Data string `json:"data,omitempty"`
}

// Options selects the recognition model
type Options struct {
	ModelName string `json:"model_name"`
}

// PayloadBuilder constructs request bodies and enforces upload size limits
type PayloadBuilder struct {
	UID             string
	ModelName       string
	MaxSize         int64
	RecommendedSize int64
	logger          *zap.Logger
}

// NewPayloadBuilder creates a builder with the default size caps
func NewPayloadBuilder(uid, modelName string, logger *zap.Logger) *PayloadBuilder {
	if uid == "" {
		uid = config.DefaultUID
	}
	if modelName == "" {
		modelName = config.DefaultModelName
	}
	return &PayloadBuilder{
		UID:             uid,
		ModelName:       modelName,
		MaxSize:         config.MaxFileSize,
		RecommendedSize: config.RecommendedFileSize,
		logger:          common.OrNop(logger),
	}
}

// FromURL builds a body that lets the service fetch the audio itself; no size limit applies
func (b *PayloadBuilder) FromURL(url string) *RequestBody {
	b.logger.Info("Transcribing from URL", zap.String("url", url))
	return b.body(AudioInput{URL: url})
}

// FromFile reads path and builds a body with its base64 content.
// The size check happens before the file is read.
func (b *PayloadBuilder) FromFile(path string) (*RequestBody, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, apperrors.Newf(apperrors.NotFound, "File not found: %s", path)
	}
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.NotFound, err, "cannot stat %s", path)
	}
	if info.IsDir() {
		return nil, apperrors.Newf(apperrors.NotFound, "not a regular file: %s", path)
	}

	size := info.Size()
	b.logger.Info("Transcribing file",
		zap.String("path", path),
		zap.String("size", formatMB(size)))

	if size > b.MaxSize {
		return nil, apperrors.Newf(apperrors.TooLarge, "File too large: %s (max: %dMB)",
			formatMB(size), b.MaxSize/bytesPerMB)
	}
	if size > b.RecommendedSize {
		b.logger.Warn("File larger than recommended, upload may be slow",
			zap.String("size", formatMB(size)),
			zap.Int64("recommended_mb", b.RecommendedSize/bytesPerMB))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.NotFound, err, "failed to read %s", path)
	}

	return b.body(AudioInput{Data: base64.StdEncoding.EncodeToString(data)}), nil
}

func (b *PayloadBuilder) body(audio AudioInput) *RequestBody {
	return &RequestBody{
		User:    User{UID: b.UID},
		Audio:   audio,
		Request: Options{ModelName: b.ModelName},
	}
}

func formatMB(size int64) string {
	return fmt.Sprintf("%.1fMB", float64(size)/bytesPerMB)
}
