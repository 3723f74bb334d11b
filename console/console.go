// Package console is the logging facade used by components and the runtime.
//
// Components call Log, Warn and Error with loosely typed arguments, the same
// way they would write to a browser console. On the server the calls are
// routed to a zap logger. Until SetLogger is called every call is a no-op,
// so rendering in tests stays silent.
package console

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(zap.NewNop().Sugar())
}

// NewLogger builds a zap logger at the given level ("debug", "info", "warn",
// "error"). Dev mode uses the human-readable console encoder.
func NewLogger(level string, dev bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	// Keep stdout free for the render command.
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// SetLogger routes console output to l. A nil logger restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l.Sugar())
}

// Logger returns the structured logger behind the facade.
func Logger() *zap.Logger {
	return current.Load().Desugar()
}

// Log writes an info-level message.
func Log(args ...any) {
	current.Load().Info(args...)
}

// Warn writes a warning.
func Warn(args ...any) {
	current.Load().Warn(args...)
}

// Error writes an error-level message.
func Error(args ...any) {
	current.Load().Error(args...)
}

// Debug writes a debug-level message.
func Debug(args ...any) {
	current.Load().Debug(args...)
}
