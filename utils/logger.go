package utils

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerOnce sync.Once
	logger     *zap.SugaredLogger
	logLevel   = zap.NewAtomicLevel()
)

// Logger is the shared structured logger, level taken from LOG_LEVEL
// (debug|info|warn|error). It is safe for concurrent use.
func Logger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		logLevel.SetLevel(ParseLogLevel(os.Getenv("LOG_LEVEL")))
		logger = newLogger(logLevel)
	})
	return logger
}

// SetLogLevel changes the level of the shared logger in place, used once the
// CLI has resolved its configuration
func SetLogLevel(level string) {
	Logger()
	logLevel.SetLevel(ParseLogLevel(level))
}

// NewLogger builds a standalone logger with its own fixed level
func NewLogger(level string) *zap.SugaredLogger {
	return newLogger(zap.NewAtomicLevelAt(ParseLogLevel(level)))
}

func newLogger(level zap.AtomicLevel) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func ParseLogLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
