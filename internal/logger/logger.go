// Package logger is the process-wide slog setup. Request handlers should
// prefer FromContext so log lines carry the request id.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var defaultLogger = slog.New(newHandler(os.Getenv("ENVIRONMENT"), nil))

// exit is swapped in tests
var exit = os.Exit

// JSON at info on stdout in production; text at debug on stderr elsewhere.
// A nil w picks the stream for the environment.
func newHandler(env string, w io.Writer) slog.Handler {
	if env == "production" {
		if w == nil {
			w = os.Stdout
		}
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	if w == nil {
		w = os.Stderr
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func Default() *slog.Logger {
	return defaultLogger
}

func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

type ctxKey struct{}

// attaches a request-scoped logger
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// falls back to the process logger when ctx is nil or carries none
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return defaultLogger
}

// package-level shortcuts onto the process logger

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

// same as Error with err attached under "error"
func ErrorErr(err error, msg string, args ...any) {
	defaultLogger.Error(msg, withErr(err, args)...)
}

// logs at error level then exits 1; only for startup
func Fatal(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
	exit(1)
}

func withErr(err error, args []any) []any {
	return append(args, slog.Any("error", err))
}
