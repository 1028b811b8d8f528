// Package ratelimit spaces out requests to the tracker.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/whatbetter/whatapi/internal/metrics"
)

// Limiter enforces a minimum interval between consecutive requests.
//
// The check of the last request time and its update happen while holding a
// single-slot semaphore, so two callers can never both pass the check before
// one of them records its timestamp. Waiters give up when their context ends.
// Callers report a finished request with Done, which moves the timestamp to
// the moment the response arrived.
type Limiter struct {
	interval time.Duration
	sem      chan struct{}
	logger   zerolog.Logger

	mu   sync.Mutex
	last time.Time

	// now and sleep are replaced in tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewLimiter creates a limiter allowing one request per interval.
// A non-positive interval disables waiting.
func NewLimiter(interval time.Duration, logger zerolog.Logger) *Limiter {
	return &Limiter{
		interval: interval,
		sem:      make(chan struct{}, 1),
		logger:   logger.With().Str("component", "rate-limiter").Logger(),
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Interval returns the configured minimum spacing.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until at least Interval has passed since the previous request
// finished, then records the current time. It only fails when ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.sem }()

	// A request finishing during the sleep pushes the deadline back.
	var waited time.Duration
	for {
		delay := l.remaining()
		if delay <= 0 {
			break
		}
		l.logger.Debug().Dur("delay", delay).Msg("Waiting before next tracker request")
		if err := l.sleep(ctx, delay); err != nil {
			return err
		}
		waited += delay
	}
	metrics.RateLimitWaitSeconds.Observe(waited.Seconds())

	l.stamp()
	return nil
}

// Done records that a request admitted by Wait has completed.
func (l *Limiter) Done() {
	if l.interval > 0 {
		l.stamp()
	}
}

func (l *Limiter) remaining() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.interval <= 0 || l.last.IsZero() {
		return 0
	}
	return l.interval - l.now().Sub(l.last)
}

func (l *Limiter) stamp() {
	l.mu.Lock()
	l.last = l.now()
	l.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
