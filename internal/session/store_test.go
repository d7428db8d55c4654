package session

import (
	"context"
	"sync"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*Store[[]string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore[[]string](ttl)
	s.now = clock.Now
	return s, clock
}

func TestStoreLoadUnknownSession(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	v, ok := s.Load("missing")
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, 0, s.Len(), "load must not create sessions")
}

func TestStoreUpdateIsPerSession(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	s.Update("a", func(v []string) []string { return append(v, "one") })
	s.Update("a", func(v []string) []string { return append(v, "two") })
	s.Update("b", func(v []string) []string { return append(v, "other") })

	a, ok := s.Load("a")
	require.True(t, ok)
	assert.Equal(t, []string{"one", "two"}, a)

	b, ok := s.Load("b")
	require.True(t, ok)
	assert.Equal(t, []string{"other"}, b)

	s.Delete("a")
	_, ok = s.Load("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestStoreUpdateSerialisesConcurrentCalls(t *testing.T) {
	s := NewStore[int](time.Minute)

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("counter", func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	n, _ := s.Load("counter")
	assert.Equal(t, 100, n)
}

func TestStoreSweepEvictsIdleSessions(t *testing.T) {
	s, clock := newTestStore(10 * time.Minute)

	s.Update("stale", func(v []string) []string { return v })
	clock.Advance(6 * time.Minute)
	s.Update("fresh", func(v []string) []string { return v })
	clock.Advance(6 * time.Minute)

	assert.Equal(t, 1, s.Sweep())
	_, ok := s.Load("stale")
	assert.False(t, ok)
	_, ok = s.Load("fresh")
	assert.True(t, ok)
}

func TestStoreLoadRefreshesSession(t *testing.T) {
	s, clock := newTestStore(10 * time.Minute)

	s.Update("a", func(v []string) []string { return v })
	clock.Advance(8 * time.Minute)
	s.Load("a")
	clock.Advance(8 * time.Minute)

	assert.Equal(t, 0, s.Sweep())
}

func TestStoreRunStopsWithContext(t *testing.T) {
	s := NewStore[int](time.Nanosecond)
	s.Update("a", func(n int) int { return n })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStoreCollector(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Update("a", func(v []string) []string { return v })
	s.Update("b", func(v []string) []string { return v })

	assert.Equal(t, float64(2), promtestutil.ToFloat64(s.Collector()))
}
