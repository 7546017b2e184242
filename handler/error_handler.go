package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/regform/pkg/logger"
)

// DefaultErrorHandler logs err and writes its status. Server errors are
// logged at error level and answered with the bare status text; client
// errors at debug level with the error message.
func DefaultErrorHandler(ctx Context, err error) {
	status := StatusOf(err)
	r := ctx.Request()
	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		logger.Error(err),
	}

	if status >= http.StatusInternalServerError {
		ctx.Logger().ErrorContext(ctx, "request failed", attrs...)
		http.Error(ctx.ResponseWriter(), http.StatusText(status), status)
		return
	}
	ctx.Logger().DebugContext(ctx, "request rejected", attrs...)

	msg := http.StatusText(status)
	var he HTTPError
	if errors.As(err, &he) {
		msg = he.Message
	}
	http.Error(ctx.ResponseWriter(), msg, status)
}
