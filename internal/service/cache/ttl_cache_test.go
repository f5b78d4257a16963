package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock { return &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func counting(calls *int32, payload string) FetchFunc {
	return func(context.Context) ([]byte, error) {
		atomic.AddInt32(calls, 1)
		return []byte(payload), nil
	}
}

func TestGetOrFetchFreshHit(t *testing.T) {
	clk := newClock()
	c := NewTTLCache("news", time.Hour, WithClock(clk.Now))
	ctx := context.Background()
	var calls int32

	b, hit, err := c.GetOrFetch(ctx, "k", counting(&calls, "v1"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "v1", string(b))
	assert.Equal(t, Fresh, c.State("k"))

	clk.Advance(59 * time.Minute)
	b, hit, err = c.GetOrFetch(ctx, "k", counting(&calls, "v2"))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v1", string(b))
	assert.EqualValues(t, 1, calls)
}

func TestGetOrFetchStaleRefetchesOnce(t *testing.T) {
	clk := newClock()
	c := NewTTLCache("news", time.Hour, WithClock(clk.Now))
	ctx := context.Background()
	var calls int32

	_, _, err := c.GetOrFetch(ctx, "k", counting(&calls, "v1"))
	require.NoError(t, err)

	clk.Advance(time.Hour)
	assert.Equal(t, Stale, c.State("k"))

	b, hit, err := c.GetOrFetch(ctx, "k", counting(&calls, "v2"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "v2", string(b))

	b, hit, err = c.GetOrFetch(ctx, "k", counting(&calls, "v3"))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v2", string(b))
	assert.EqualValues(t, 2, calls)
}

func TestGetOrFetchErrorsAreNotCached(t *testing.T) {
	c := NewTTLCache("news", time.Hour)
	ctx := context.Background()
	boom := errors.New("upstream down")

	_, _, err := c.GetOrFetch(ctx, "k", func(context.Context) ([]byte, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Absent, c.State("k"))

	var calls int32
	b, hit, err := c.GetOrFetch(ctx, "k", counting(&calls, "ok"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "ok", string(b))
}

func TestGetOrFetchSingleFlight(t *testing.T) {
	c := NewTTLCache("news", time.Hour)
	ctx := context.Background()

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("shared"), nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, _, err := c.GetOrFetch(ctx, "k", fetch)
			assert.NoError(t, err)
			results[i] = string(b)
		}(i)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls)
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestGetOrFetchLeaderCancelDoesNotFailWaiters(t *testing.T) {
	c := NewTTLCache("news", time.Hour)

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		select {
		case <-release:
			return []byte("shared"), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrFetch(leaderCtx, "k", fetch)
		leaderErr <- err
	}()
	<-started

	type outcome struct {
		payload string
		err     error
	}
	waiter := make(chan outcome, 1)
	go func() {
		b, _, err := c.GetOrFetch(context.Background(), "k", fetch)
		waiter <- outcome{string(b), err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	got := <-waiter
	require.NoError(t, got.err)
	assert.Equal(t, "shared", got.payload)
	assert.EqualValues(t, 1, calls)
	assert.Equal(t, Fresh, c.State("k"))
}

func TestGetOrFetchKeysAreIndependent(t *testing.T) {
	c := NewTTLCache("news", time.Hour)
	ctx := context.Background()
	var calls int32

	_, _, _ = c.GetOrFetch(ctx, "a", counting(&calls, "a"))
	b, hit, err := c.GetOrFetch(ctx, "b", counting(&calls, "b"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "b", string(b))
	assert.EqualValues(t, 2, calls)
}

type memTier struct {
	mu sync.Mutex
	m  map[string]Entry
}

func (t *memTier) Get(_ context.Context, key string) (Entry, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.m[key]
	return e, ok, nil
}

func (t *memTier) Set(_ context.Context, key string, e Entry, _ time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[key] = e
	return nil
}

func TestSecondTierKeepsCreatedAt(t *testing.T) {
	clk := newClock()
	tier := &memTier{m: map[string]Entry{}}
	ctx := context.Background()
	var calls int32

	writer := NewTTLCache("news", time.Hour, WithClock(clk.Now), WithSecondTier(tier))
	_, _, err := writer.GetOrFetch(ctx, "k", counting(&calls, "v1"))
	require.NoError(t, err)

	clk.Advance(30 * time.Minute)
	reader := NewTTLCache("news", time.Hour, WithClock(clk.Now), WithSecondTier(tier))
	b, hit, err := reader.GetOrFetch(ctx, "k", counting(&calls, "v2"))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v1", string(b))

	clk.Advance(31 * time.Minute)
	assert.Equal(t, Stale, reader.State("k"), "replica keeps the writer's creation time")

	b, hit, err = reader.GetOrFetch(ctx, "k", counting(&calls, "v3"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "v3", string(b))
	assert.EqualValues(t, 2, calls)
}
