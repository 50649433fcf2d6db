package log

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config returns the zap configuration used by the CLI. Logs go to stderr so
// they never mix with command output.
func Config(debug bool) zap.Config {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeCaller = nil

	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	return cfg
}

// New builds the CLI logger
func New(debug bool) (*zap.Logger, error) {
	logger, err := Config(debug).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build config for logger: %v", err)
	}
	return logger, nil
}

// NewWriter builds a console logger that writes to w, without colors
func NewWriter(w io.Writer, debug bool) *zap.Logger {
	cfg := Config(debug)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeTime = nil
	cfg.EncoderConfig.EncodeCaller = nil
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg.EncoderConfig), zapcore.AddSync(w), cfg.Level)
	return zap.New(core)
}

// Stage logs the start of a processing stage at debug level and returns a
// func that logs its duration when called.
func Stage(logger *zap.Logger, name string, fields ...zap.Field) func() {
	if logger == nil || !logger.Core().Enabled(zap.DebugLevel) {
		return func() {}
	}
	start := time.Now()
	logger.Debug(name+" started", fields...)
	return func() {
		logger.Debug(name+" finished", append(fields, zap.Duration("elapsed", time.Since(start)))...)
	}
}
