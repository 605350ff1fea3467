package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON logger writing to stderr at the configured level.
// Verbose forces debug.
func (s Settings) NewLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if s.LogLevel != "" {
		parsed, err := zapcore.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = !verbose
	return cfg.Build()
}
