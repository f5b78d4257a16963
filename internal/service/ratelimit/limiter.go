package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultSweepInterval is how often idle buckets are dropped.
const DefaultSweepInterval = time.Minute

// Limiter keeps one token bucket per client key. Buckets that have refilled
// completely are dropped on a periodic sweep: a new client bucket starts full,
// so dropping them changes nothing but memory.
type Limiter struct {
	mu        sync.RWMutex
	m         map[string]*rate.Limiter
	rps       float64
	burst     int
	now       func() time.Time
	every     time.Duration
	lastSweep time.Time
}

// Option configures Limiter.
type Option func(*Limiter)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithSweepInterval sets how often full buckets are dropped.
func WithSweepInterval(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.every = d
		}
	}
}

func New(rps float64, burst int, opts ...Option) *Limiter {
	l := &Limiter{
		m:     make(map[string]*rate.Limiter),
		rps:   rps,
		burst: burst,
		now:   time.Now,
		every: DefaultSweepInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l
}

func (l *Limiter) get(key string, now time.Time) *rate.Limiter {
	l.mu.RLock()
	b, ok := l.m[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.m[key]; ok {
		return b
	}
	if now.Sub(l.lastSweep) >= l.every {
		l.sweep(now)
	}
	b = rate.NewLimiter(rate.Limit(l.rps), l.burst)
	l.m[key] = b
	return b
}

// sweep drops buckets back at full capacity. Caller holds mu.
func (l *Limiter) sweep(now time.Time) {
	for k, b := range l.m {
		if b.TokensAt(now) >= float64(l.burst) {
			delete(l.m, k)
		}
	}
	l.lastSweep = now
}

// Allow returns true if one token can be consumed for key.
// A limiter with rps <= 0 allows everything.
func (l *Limiter) Allow(key string) bool {
	if l == nil || l.rps <= 0 {
		return true
	}
	now := l.now()
	return l.get(key, now).AllowN(now, 1)
}

// Len reports how many client buckets exist.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.m)
}
