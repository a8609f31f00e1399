package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// WithLogger attaches logger to ctx. A nil ctx starts from Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to ctx, or Default when there is
// none.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// ForScript derives a logger that tags every entry with the build script
// path and stores it in the returned context, so code further down the
// pipeline logs against the file without repeating the field.
func ForScript(ctx context.Context, path string) (context.Context, *log.Logger) {
	logger := FromContext(ctx).With(FieldPath, path)
	return WithLogger(ctx, logger), logger
}
