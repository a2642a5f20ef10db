// Package ratelimit limits API requests per client and route with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket holds up to capacity tokens and regains perSecond tokens each second.
type bucket struct {
	mu        sync.Mutex
	capacity  float64
	perSecond float64
	tokens    float64
	updated   time.Time
	lastSeen  time.Time
}

func newBucket(capacity int, perSecond float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity:  float64(capacity),
		perSecond: perSecond,
		tokens:    float64(capacity),
		updated:   now,
		lastSeen:  now,
	}
}

// refill must be called with b.mu held.
func (b *bucket) refill(now time.Time) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.updated).Seconds()*b.perSecond)
	b.updated = now
}

// take consumes one token if there is one.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refill(now)
	b.lastSeen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// status reports the whole tokens left and when the bucket is full again.
func (b *bucket) status() (int, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refill(now)
	missing := b.capacity - b.tokens
	if missing <= 0 {
		return int(b.tokens), now
	}
	return int(b.tokens), now.Add(time.Duration(missing / b.perSecond * float64(time.Second)))
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info is the limit state reported for one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config configures a Limiter.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleBucketTTL   time.Duration // 0 means one hour
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter keeps one bucket per client, route and method.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*bucket

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// NewLimiter returns a Limiter for config. A nil config allows 1000 requests
// a minute per client and route.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.sweep()
	}
	return l
}

// Allow takes a token for clientID on the route that endpoint and method
// resolve to. Unlimited routes, whitelisted clients and a disabled limiter
// report a zero Limit.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	switch {
	case !l.config.Enabled, l.config.Whitelist[clientID]:
		return true, Info{Allowed: true}
	case l.config.Blacklist[clientID]:
		return false, Info{}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	// A matched pattern is the route, so all sessions share one budget.
	route := endpoint
	if ec.Path != "" {
		route = ec.Path
	}
	b := l.bucketFor(clientID+":"+route+":"+method, ec)

	allowed := b.take()
	remaining, reset := b.status()
	info := Info{
		Allowed:   allowed,
		Limit:     ec.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		info.RetryAfter = max(time.Until(reset), 0)
	}
	return allowed, info
}

func (l *Limiter) bucketFor(key string, ec *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	capacity := ec.Burst
	if capacity <= 0 {
		capacity = ec.Limit
	}
	b := newBucket(capacity, float64(ec.Limit)/ec.Window.Seconds())
	l.buckets[key] = b
	return b
}

func (l *Limiter) sweep() {
	for {
		select {
		case <-l.ticker.C:
			l.cleanupBuckets()
		case <-l.done:
			return
		}
	}
}

// cleanupBuckets drops buckets unused for longer than IdleBucketTTL.
func (l *Limiter) cleanupBuckets() {
	ttl := l.config.IdleBucketTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := time.Now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop ends the cleanup loop. Calling it again is a no-op.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.ticker != nil {
			l.ticker.Stop()
			close(l.done)
		}
	})
}
