package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/config"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testConfig(limit, burst int) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  limit,
		DefaultWindow: time.Minute,
		DefaultBurst:  burst,
		IdleTimeout:   time.Hour,
	}
}

func TestLimiter_Allow(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(60, 3), clock.Now)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/config", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 60, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/config", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, time.Second.Seconds(), info.RetryAfter.Seconds(), 0.001)
	assert.True(t, info.ResetTime.After(clock.Now()))
}

func TestLimiter_Refill(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(60, 2), clock.Now)
	defer l.Stop()

	l.Allow("c", "/config", "GET")
	l.Allow("c", "/config", "GET")
	allowed, _ := l.Allow("c", "/config", "GET")
	require.False(t, allowed)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("c", "/config", "GET")
	assert.True(t, allowed, "one token refills per second at 60/min")

	allowed, _ = l.Allow("c", "/config", "GET")
	assert.False(t, allowed)
}

func TestLimiter_DeniedRequestsDoNotConsume(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(60, 1), clock.Now)
	defer l.Stop()

	l.Allow("c", "/config", "GET")
	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/config", "GET")
		require.False(t, allowed)
	}

	clock.Advance(time.Second)
	allowed, _ := l.Allow("c", "/config", "GET")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(60, 1), clock.Now)
	defer l.Stop()

	allowed, _ := l.Allow("a", "/config", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/config", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/config", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("c", "/analyze", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(1, 1), clock.Now)
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
	assert.Zero(t, l.size())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig(100, 100)
	cfg.EndpointConfigs = DefaultEndpointConfigs(10, 4)
	l := newLimiter(cfg, clock.Now)
	defer l.Stop()

	allowed, info := l.Allow("c", "/analyze", "POST")
	require.True(t, allowed)
	assert.Equal(t, 5, info.Limit)

	allowed, _ = l.Allow("c", "/analyze", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/analyze", "POST")
	assert.False(t, allowed, "analyze burst is half of 4")

	allowed, info = l.Allow("c", "/parse", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 10, info.Limit)

	_, info = l.Allow("c", "/config", "GET")
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(60, 50), clock.Now)
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/config", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_Cleanup(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(testConfig(60, 5), clock.Now)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/config", "GET")
	}
	require.Equal(t, 3, l.size())

	clock.Advance(30 * time.Minute)
	l.Allow("client-0", "/config", "GET")
	clock.Advance(45 * time.Minute)
	l.cleanupBuckets()

	assert.Equal(t, 1, l.size(), "only the recently used bucket survives")
}

func TestLimiter_StopTwice(t *testing.T) {
	cfg := testConfig(60, 5)
	cfg.CleanupInterval = time.Hour
	l := NewLimiter(cfg)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("c", "/config", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: 5},
		{Path: "/jobs/", Method: "POST", Limit: 7},
	}

	tests := []struct {
		name   string
		path   string
		method string
		limit  int
		isNil  bool
	}{
		{name: "exact", path: "/analyze", method: "POST", limit: 5},
		{name: "wrong method", path: "/analyze", method: "GET", isNil: true},
		{name: "prefix", path: "/jobs/42", method: "POST", limit: 7},
		{name: "health", path: "/health", method: "GET", limit: 0},
		{name: "unknown", path: "/other", method: "POST", isNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.isNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.limit, got.Limit)
		})
	}
}

func TestFromServerConfig(t *testing.T) {
	sc := config.Default().Server
	sc.RateLimitEnabled = true

	cfg := FromServerConfig(sc)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.DefaultLimit)
	assert.Equal(t, 10, cfg.DefaultBurst)
	require.Len(t, cfg.EndpointConfigs, 2)
	assert.Equal(t, 30, cfg.EndpointConfigs[0].Limit)
}
