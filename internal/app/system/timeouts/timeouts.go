// Package timeouts holds the deadlines applied to database work in handlers
// and stores.
//
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list queries and multi-step operations (review + rating recompute)
//   - Long: startup schema work
package timeouts

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var ping, short, medium, long atomic.Int64

func init() { Reset() }

func Ping() time.Duration   { return time.Duration(ping.Load()) }
func Short() time.Duration  { return time.Duration(short.Load()) }
func Medium() time.Duration { return time.Duration(medium.Load()) }
func Long() time.Duration   { return time.Duration(long.Load()) }

// Config overrides defaults. Zero fields keep the current value.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// Configure applies cfg. Call once at startup.
func Configure(cfg Config) {
	set := func(v *atomic.Int64, d time.Duration) {
		if d > 0 {
			v.Store(int64(d))
		}
	}
	set(&ping, cfg.Ping)
	set(&short, cfg.Short)
	set(&medium, cfg.Medium)
	set(&long, cfg.Long)
}

// Reset restores defaults.
func Reset() {
	ping.Store(int64(DefaultPing))
	short.Store(int64(DefaultShort))
	medium.Store(int64(DefaultMedium))
	long.Store(int64(DefaultLong))
}

// Current returns the active configuration.
func Current() Config {
	return Config{Ping: Ping(), Short: Short(), Medium: Medium(), Long: Long()}
}

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline was what ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "add review")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
