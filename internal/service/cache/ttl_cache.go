package cache

import (
	"context"
	"sync"
	"time"

	"FundPulse/internal/domain/repository"
	"FundPulse/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// FetchFunc produces a fresh payload for a missing or stale key.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Option configures TTLCache.
type Option func(*TTLCache)

// TTLCache is a time-windowed response cache. Staleness is checked on read,
// there is no background eviction. Concurrent misses on one key share a
// single fetch.
type TTLCache struct {
	name    string
	ttl     time.Duration
	now     func() time.Time
	entries sync.Map // string -> *Entry
	group   singleflight.Group
	l2      SecondTier
	log     *logger.Logger
	metrics repository.Metrics
}

// NewTTLCache creates a cache whose entries stay fresh for ttl.
func NewTTLCache(name string, ttl time.Duration, opts ...Option) *TTLCache {
	c := &TTLCache{
		name: name,
		ttl:  ttl,
		now:  time.Now,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *TTLCache) { c.now = now }
}

// WithSecondTier shares entries through a store such as Redis.
func WithSecondTier(l2 SecondTier) Option {
	return func(c *TTLCache) { c.l2 = l2 }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *TTLCache) { c.log = l.With(logger.String("cache", c.name)) }
}

func WithMetrics(m repository.Metrics) Option {
	return func(c *TTLCache) { c.metrics = m }
}

// State reports whether key is absent, fresh or stale right now.
func (c *TTLCache) State(key string) State {
	e, ok := c.load(key)
	if !ok {
		return Absent
	}
	if c.fresh(e) {
		return Fresh
	}
	return Stale
}

type result struct {
	payload []byte
	hit     bool
}

// GetOrFetch returns the fresh payload for key, calling fetch when the key is
// absent or stale. hit reports whether the payload came from the cache.
// Fetch errors are returned and never stored.
//
// The shared fetch is detached from the caller's cancellation so one caller
// leaving does not fail the others waiting on the same key. Each caller still
// stops waiting when its own ctx is done.
func (c *TTLCache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) ([]byte, bool, error) {
	if e, ok := c.load(key); ok && c.fresh(e) {
		c.record("hit")
		c.log.Debug("cache hit", logger.String("key", key))
		return e.Payload, true, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// Another flight may have filled the key while we waited on the map.
		if e, ok := c.load(key); ok && c.fresh(e) {
			return result{payload: e.Payload, hit: true}, nil
		}
		if e, ok := c.loadSecondTier(shared, key); ok {
			return result{payload: e.Payload, hit: true}, nil
		}

		payload, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		c.store(shared, key, &Entry{Payload: payload, CreatedAt: c.now()})
		return result{payload: payload}, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		c.record("error")
		return nil, false, ctx.Err()
	}
	if res.Err != nil {
		c.record("error")
		return nil, false, res.Err
	}

	r := res.Val.(result)
	if r.hit {
		c.record("hit")
	} else {
		c.record("miss")
		c.log.Debug("cache miss", logger.String("key", key))
	}
	return r.payload, r.hit, nil
}

func (c *TTLCache) load(key string) (*Entry, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Entry), true
}

func (c *TTLCache) fresh(e *Entry) bool {
	return c.now().Sub(e.CreatedAt) < c.ttl
}

func (c *TTLCache) loadSecondTier(ctx context.Context, key string) (*Entry, bool) {
	if c.l2 == nil {
		return nil, false
	}
	e, ok, err := c.l2.Get(ctx, key)
	if err != nil {
		c.log.Warn("second tier read failed", logger.String("key", key), logger.Error(err))
		return nil, false
	}
	if !ok || !c.fresh(&e) {
		return nil, false
	}
	c.entries.Store(key, &e)
	return &e, true
}

func (c *TTLCache) store(ctx context.Context, key string, e *Entry) {
	c.entries.Store(key, e)
	if c.l2 == nil {
		return
	}
	if err := c.l2.Set(ctx, key, *e, c.ttl); err != nil {
		c.log.Warn("second tier write failed", logger.String("key", key), logger.Error(err))
	}
}

func (c *TTLCache) record(result string) {
	if c.metrics != nil {
		c.metrics.RecordCacheLookup(c.name, result)
	}
}
