package httputil

import (
	"context"

	"golang.org/x/time/rate"
)

// GitHub's documented per-hour request budgets. The crawl shares one budget
// across all fetchers, so a single limiter gates every outbound call rather
// than each fetcher pacing itself independently.
const (
	authenticatedPerHour = 5000
	anonymousPerHour     = 60
)

// Limiter is a token-bucket gate for outbound API calls. The zero value is
// unusable; construct with [NewLimiter].
type Limiter struct {
	rl *rate.Limiter
}

// NewLimiter sizes the token bucket for the GitHub API budget. With a token
// the bucket refills at the authenticated rate with a burst of 10; without
// one it refills at the anonymous rate with a burst of 2.
func NewLimiter(authenticated bool) *Limiter {
	perHour, burst := anonymousPerHour, 2
	if authenticated {
		perHour, burst = authenticatedPerHour, 10
	}
	return &Limiter{rl: rate.NewLimiter(rate.Limit(float64(perHour)/3600), burst)}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.rl == nil {
		return nil
	}
	return l.rl.Wait(ctx)
}

// Burst returns the configured burst size. Exposed for tests and summaries.
func (l *Limiter) Burst() int {
	if l == nil || l.rl == nil {
		return 0
	}
	return l.rl.Burst()
}
