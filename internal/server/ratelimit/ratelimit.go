// Package ratelimit provides token bucket rate limiting for the API. Model
// calls burn provider quota, so the LLM-backed endpoints run on much tighter
// buckets than plain document edits.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket refills at a steady rate up to a burst capacity.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) take() (bool, time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true, 0
	}

	needed := 1.0 - tb.tokens
	return false, time.Duration(needed / tb.refillRate * float64(time.Second))
}

// Rule describes one bucket: Limit requests per Window, with Burst extra
// headroom (defaults to Limit when zero).
type Rule struct {
	Limit  int
	Window time.Duration
	Burst  int
}

// Limiter maintains one bucket per (client, rule class) pair.
type Limiter struct {
	modelRule Rule
	editRule  Rule

	mu      sync.Mutex
	buckets map[string]*tokenBucket
}

// DefaultModelRule throttles endpoints that call out to the LLM provider.
func DefaultModelRule() Rule {
	return Rule{Limit: 20, Window: time.Minute, Burst: 5}
}

// DefaultEditRule throttles plain document operations.
func DefaultEditRule() Rule {
	return Rule{Limit: 600, Window: time.Minute}
}

// NewLimiter creates a Limiter with the given rules. Zero-limit rules
// disable throttling for that class.
func NewLimiter(modelRule, editRule Rule) *Limiter {
	return &Limiter{
		modelRule: modelRule,
		editRule:  editRule,
		buckets:   make(map[string]*tokenBucket),
	}
}

// AllowModel checks the model-call bucket for a client.
func (l *Limiter) AllowModel(clientID string) (bool, time.Duration) {
	return l.allow("model:"+clientID, l.modelRule)
}

// AllowEdit checks the edit bucket for a client.
func (l *Limiter) AllowEdit(clientID string) (bool, time.Duration) {
	return l.allow("edit:"+clientID, l.editRule)
}

func (l *Limiter) allow(key string, rule Rule) (bool, time.Duration) {
	if rule.Limit <= 0 {
		return true, 0
	}

	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		bucket = newTokenBucket(burst, float64(rule.Limit)/rule.Window.Seconds())
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	return bucket.take()
}
