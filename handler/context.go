package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Context exposes the request, response writer and request-scoped logger to
// a HandlerFunc. It delegates context.Context to the request context.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Logger() *slog.Logger
}

type httpContext struct {
	w   http.ResponseWriter
	r   *http.Request
	log *slog.Logger
}

// NewContext wraps w and r. A nil logger falls back to slog.Default.
func NewContext(w http.ResponseWriter, r *http.Request, log *slog.Logger) Context {
	if log == nil {
		log = slog.Default()
	}
	return &httpContext{w: w, r: r, log: log}
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *httpContext) Logger() *slog.Logger                { return c.log }

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *httpContext) Err() error                  { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any           { return c.r.Context().Value(key) }
