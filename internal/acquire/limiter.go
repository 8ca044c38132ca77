package acquire

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the process-wide gate that enforces a minimum interval
// between outbound requests. It is shared across all providers —
// there is one clock, not one per source — so back-to-back provider
// attempts for one paper and long batches both stay spaced out.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter creates a limiter with the given minimum interval
// between permits.
func NewLimiter(minInterval time.Duration) *Limiter {
	return &Limiter{l: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the caller is permitted to make a request.
func (g *Limiter) Wait(ctx context.Context) error {
	return g.l.Wait(ctx)
}
