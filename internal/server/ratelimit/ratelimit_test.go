package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(cfg *Config) *Limiter {
	if cfg != nil {
		cfg.CleanupInterval = 0
	}
	return NewLimiter(cfg)
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Method: "POST", Prefix: "/api/analyze", Limit: 10, Window: time.Hour, Burst: 3},
		},
	})

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4", "/api/analyze", "POST"), "request %d within burst", i)
	}
	assert.False(t, l.Allow("1.2.3.4", "/api/analyze", "POST"))
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	l := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Method: "POST", Prefix: "/api/analyze", Limit: 10, Window: time.Hour, Burst: 1},
		},
	})

	assert.True(t, l.Allow("1.2.3.4", "/api/analyze", "POST"))
	assert.False(t, l.Allow("1.2.3.4", "/api/analyze", "POST"))
	assert.True(t, l.Allow("5.6.7.8", "/api/analyze", "POST"), "a second client has its own bucket")
}

func TestLimiter_PollingUsesDefaultBudget(t *testing.T) {
	l := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Method: "POST", Prefix: "/api/profiles/generate", Limit: 10, Window: time.Hour, Burst: 1},
		},
	})

	// GET polls on the same path do not match the POST rule.
	assert.True(t, l.Allow("1.2.3.4", "/api/profiles/generate", "POST"))
	for i := 0; i < 20; i++ {
		assert.True(t, l.Allow("1.2.3.4", "/api/profiles/generate", "GET"))
	}
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := newTestLimiter(&Config{Enabled: false})
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("1.2.3.4", "/api/analyze", "POST"))
	}
}

func TestLimiter_HealthNeverLimited(t *testing.T) {
	l := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	})

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("1.2.3.4", "/health", "GET"))
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  5,
		DefaultWindow: time.Minute,
	})

	l.Allow("1.2.3.4", "/api/analyze", "GET")
	assert.Len(t, l.buckets, 1)

	l.evictIdle(time.Now().Add(time.Second))
	assert.Empty(t, l.buckets)
	assert.Empty(t, l.lastAccess)
}
