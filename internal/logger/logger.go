// Package logger builds the zap loggers used across the service.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FieldRequestID is the structured log field key for the Fiber request id.
	FieldRequestID = "request_id"
	// FieldEmail is the structured log field key for the candidate email.
	FieldEmail = "candidate_email"
	// FieldModel is the structured log field key for the Gemini model name.
	FieldModel = "ai_model"
	// FieldCollection is the structured log field key for the Qdrant collection.
	FieldCollection = "collection"
)

// New returns a development logger (console, debug level) or a production one.
// jsonOutput forces the JSON encoder in development too.
func New(development, jsonOutput bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if jsonOutput {
		cfg.Encoding = "json"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(log *zap.Logger, fields ...zap.Field) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}

	if len(fields) == 0 {
		return log
	}

	return log.With(fields...)
}

// String returns a zap string field, or zap.Skip when the value is blank.
func String(key, value string) zap.Field {
	value = strings.TrimSpace(value)
	if value == "" {
		return zap.Skip()
	}
	return zap.String(key, value)
}
