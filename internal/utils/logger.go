package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	loggerEncoding   = "console"
	loggerMessageKey = "message"
)

// NewApplicationLogger constructs a zap logger configured for human-readable
// console output: message only, no caller, no stack traces.
func NewApplicationLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = loggerEncoding
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = EmptyString
	config.EncoderConfig.LevelKey = EmptyString
	config.EncoderConfig.NameKey = EmptyString
	config.EncoderConfig.CallerKey = EmptyString
	config.EncoderConfig.MessageKey = loggerMessageKey
	config.EncoderConfig.StacktraceKey = EmptyString
	return config.Build()
}
