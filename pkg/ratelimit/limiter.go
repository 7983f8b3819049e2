// Package ratelimit keeps one token bucket per (scope, client) pair, so a
// client spending its budget on one route keeps its budget on the others.
package ratelimit

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Decision is the outcome of one Take.
type Decision struct {
	Allowed bool
	// RetryAfter is how long the client must wait for the next token.
	// Zero when Allowed.
	RetryAfter time.Duration
}

// Limiter applies a token bucket per scope and client. Buckets idle for
// longer than idleTTL are swept lazily. A nil *Limiter allows everything.
type Limiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu        sync.Mutex
	buckets   map[bucketKey]*bucket
	lastSweep time.Time
}

type bucketKey struct {
	scope  string
	client string
}

type bucket struct {
	tokens   *rate.Limiter
	lastSeen time.Time
}

// New returns nil when rps or burst is not positive.
func New(rps float64, burst int, idleTTL time.Duration) *Limiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &Limiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		buckets: make(map[bucketKey]*bucket),
	}
}

// Take spends one token from the client's bucket for scope. A blank client
// is not limited. Rejected attempts do not consume tokens.
func (l *Limiter) Take(scope, client string, now time.Time) Decision {
	if l == nil {
		return Decision{Allowed: true}
	}
	client = strings.TrimSpace(client)
	if client == "" {
		return Decision{Allowed: true}
	}
	key := bucketKey{scope: scope, client: client}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lastSweep.IsZero() {
		l.lastSweep = now
	} else if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweepLocked(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	r := b.tokens.ReserveN(now, 1)
	if !r.OK() {
		return Decision{RetryAfter: l.idleTTL}
	}
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return Decision{RetryAfter: wait}
	}
	return Decision{Allowed: true}
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweepLocked(now time.Time) {
	cutoff := now.Add(-l.idleTTL)
	for k, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, k)
		}
	}
	l.lastSweep = now
}
