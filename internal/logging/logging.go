// Package logging configures the zap loggers used by the arpack tool.
package logging

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const loggerKey contextKey = "logger"

// Levels lists the accepted values for the log level flag.
var Levels = []string{"debug", "info", "warn", "error"}

// New returns a console logger writing to w at the given level.
func New(w io.Writer, level string) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	ec := zapcore.EncoderConfig{
		TimeKey:          zapcore.OmitKey,
		LevelKey:         "L",
		NameKey:          "N",
		MessageKey:       "M",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(ec),
		zapcore.AddSync(w),
		lvl,
	)).Sugar(), nil
}

// WithLogger returns a derived context with associated logger.
func WithLogger(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger associated with ctx, or a logger that discards everything.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok && l != nil {
		return l
	}
	return zap.NewNop().Sugar()
}

// LoggerForModuleFunc returns the logger for a module, given a context.
type LoggerForModuleFunc func(ctx context.Context) *zap.SugaredLogger

// Module returns a function that returns the logger associated with a context, named after module.
func Module(module string) LoggerForModuleFunc {
	return func(ctx context.Context) *zap.SugaredLogger {
		return FromContext(ctx).Named(module)
	}
}
