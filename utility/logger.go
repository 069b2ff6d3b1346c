package utility

import (
	"context"
	"log/slog"
)

// Logger is the minimal structured-logger interface used by this package.
// It mirrors slog.Logger.LogAttrs so callers can plug in their own logger.
type Logger interface {
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
}
