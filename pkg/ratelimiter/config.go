package ratelimiter

import (
	"fmt"
	"time"
)

// Config describes a token bucket. A key may spend Capacity tokens at once;
// RefillRate tokens come back every RefillInterval.
type Config struct {
	Capacity       int           `env:"RATELIMIT_CAPACITY" envDefault:"5" validate:"min=1"`
	RefillRate     int           `env:"RATELIMIT_REFILL_RATE" envDefault:"1" validate:"min=1"`
	RefillInterval time.Duration `env:"RATELIMIT_REFILL_INTERVAL" envDefault:"1m" validate:"gt=0"`
	MaxKeys        int           `env:"RATELIMIT_MAX_KEYS" envDefault:"100000" validate:"min=1"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// idleAfter is how long an untouched bucket takes to fill up again; after
// that its state equals a fresh bucket and can be forgotten.
func (c Config) idleAfter() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals) * c.RefillInterval
}
