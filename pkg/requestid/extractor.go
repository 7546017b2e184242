package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/regform/pkg/logger"
)

// LoggerExtractor adds request_id to log records of requests that went
// through Middleware.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
