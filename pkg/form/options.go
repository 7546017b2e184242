package form

import (
	"log/slog"

	"github.com/dmitrymomot/regform/pkg/logger"
)

// Option configures a Form.
type Option func(*config)

type config struct {
	logger *slog.Logger
	name   string
}

func defaultConfig() *config {
	return &config{
		logger: logger.Discard(),
	}
}

// WithLogger sets the logger used for debug output. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithName labels the form in log records.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
