// Package ratelimit provides per-client token bucket rate limiting for the
// panel API. Generation and analysis submissions are expensive provider
// calls, so they get much tighter budgets than polling reads.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// bucket is a token bucket refilled continuously at rate tokens/second.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	rate       float64
	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		rate:       rate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.rate)
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// Rule scopes a budget to a method and path prefix.
type Rule struct {
	Method string
	Prefix string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds the limiter settings. Disabled limiters allow everything.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Rules           []Rule
}

// DefaultConfig applies a tight budget to job submissions and a lenient one
// to everything else.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Rules: []Rule{
			{Method: "POST", Prefix: "/api/profiles/generate", Limit: 20, Window: time.Hour, Burst: 5},
			{Method: "POST", Prefix: "/api/analyze", Limit: 20, Window: time.Hour, Burst: 5},
		},
	}
}

// Limiter tracks one bucket per (client, method, matched rule) key and evicts
// idle buckets from a background cleanup goroutine.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time
	config     *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a limiter and starts its cleanup goroutine.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		config:     config,
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// Allow reports whether the client may make this request, consuming a token
// when it may. Health checks are never limited.
func (l *Limiter) Allow(clientID, path, method string) bool {
	if !l.config.Enabled || path == "/health" {
		return true
	}

	limit, window, burst := l.config.DefaultLimit, l.config.DefaultWindow, 0
	key := clientID + ":" + method + ":default"
	for _, rule := range l.config.Rules {
		if rule.Method == method && strings.HasPrefix(path, rule.Prefix) {
			limit, window, burst = rule.Limit, rule.Window, rule.Burst
			key = clientID + ":" + method + ":" + rule.Prefix
			break
		}
	}
	if burst <= 0 {
		burst = limit
	}

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(burst, float64(limit)/window.Seconds())
		l.buckets[key] = b
	}
	l.lastAccess[key] = time.Now()
	l.mu.Unlock()

	return b.allow()
}

// Stop halts the cleanup goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
			close(l.cleanupStop)
		}
	})
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle(time.Now().Add(-time.Hour))
		case <-l.cleanupStop:
			return
		}
	}
}

func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}
