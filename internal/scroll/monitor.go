package scroll

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/KovyD20/Video-games-database-project/internal/loader"
)

// DefaultThreshold is the distance from the document end, in viewport
// units, at which the next page is requested.
const DefaultThreshold = 100

// Viewport is one observation of the scroll position.
type Viewport struct {
	InnerHeight    float64
	ScrollY        float64
	DocumentHeight float64
}

// NearBottom reports whether the visible bottom edge is within threshold
// of the document end.
func NearBottom(v Viewport, threshold float64) bool {
	return v.InnerHeight+v.ScrollY >= v.DocumentHeight-threshold
}

// Fetcher is the part of loader.Loader the monitor drives.
type Fetcher interface {
	CanFetch() bool
	Trigger(ctx context.Context) (loader.Outcome, error)
}

// Monitor forwards near-bottom viewport events to a Fetcher.
type Monitor struct {
	fetcher   Fetcher
	threshold float64
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithThreshold overrides DefaultThreshold. Negative values are ignored.
func WithThreshold(threshold float64) Option {
	return func(m *Monitor) {
		if threshold >= 0 {
			m.threshold = threshold
		}
	}
}

// WithRateLimit allows at most one trigger per interval. Events arriving
// faster are dropped rather than queued. A zero interval disables the bound.
func WithRateLimit(every time.Duration) Option {
	return func(m *Monitor) {
		if every <= 0 {
			m.limiter = nil
			return
		}
		m.limiter = rate.NewLimiter(rate.Every(every), 1)
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a monitor for f with no rate bound.
func New(f Fetcher, opts ...Option) *Monitor {
	m := &Monitor{
		fetcher:   f,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Observe handles one viewport event. It reports whether Trigger was
// called and returns the Trigger error, if any.
func (m *Monitor) Observe(ctx context.Context, v Viewport) (bool, error) {
	if !NearBottom(v, m.threshold) {
		return false, nil
	}
	if !m.fetcher.CanFetch() {
		return false, nil
	}
	if m.limiter != nil && !m.limiter.Allow() {
		m.logger.Debug("scroll trigger rate limited")
		return false, nil
	}

	_, err := m.fetcher.Trigger(ctx)
	return true, err
}

// Run observes viewports from events until ctx is done or events is
// closed. Fetch failures do not stop the monitor: the next near-bottom
// event retries. Returns ctx.Err() on cancellation and nil on close.
func (m *Monitor) Run(ctx context.Context, events <-chan Viewport) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := m.Observe(ctx, v); err != nil {
				m.logger.Warn("scroll trigger failed", "error", err)
			}
		}
	}
}
