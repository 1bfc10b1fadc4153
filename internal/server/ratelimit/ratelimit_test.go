package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_BurstThenThrottled(t *testing.T) {
	l := NewLimiter(Rule{Limit: 10, Window: time.Minute, Burst: 3}, DefaultEditRule())

	for i := 0; i < 3; i++ {
		allowed, _ := l.AllowModel("client-a")
		assert.True(t, allowed, "request %d within burst", i)
	}

	allowed, retryAfter := l.AllowModel("client-a")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	l := NewLimiter(Rule{Limit: 10, Window: time.Minute, Burst: 1}, DefaultEditRule())

	allowed, _ := l.AllowModel("client-a")
	assert.True(t, allowed)
	allowed, _ = l.AllowModel("client-a")
	assert.False(t, allowed)

	allowed, _ = l.AllowModel("client-b")
	assert.True(t, allowed, "another client has its own bucket")
}

func TestLimiter_ModelAndEditBucketsIndependent(t *testing.T) {
	l := NewLimiter(Rule{Limit: 10, Window: time.Minute, Burst: 1}, Rule{Limit: 100, Window: time.Minute})

	allowed, _ := l.AllowModel("client-a")
	assert.True(t, allowed)
	allowed, _ = l.AllowModel("client-a")
	assert.False(t, allowed)

	allowed, _ = l.AllowEdit("client-a")
	assert.True(t, allowed, "edit bucket unaffected by exhausted model bucket")
}

func TestLimiter_ZeroLimitDisables(t *testing.T) {
	l := NewLimiter(Rule{}, Rule{})

	for i := 0; i < 100; i++ {
		allowed, _ := l.AllowModel("client-a")
		assert.True(t, allowed)
	}
}

func TestLimiter_BucketRefills(t *testing.T) {
	// 50 tokens/second so the bucket visibly refills within the test.
	l := NewLimiter(Rule{Limit: 50, Window: time.Second, Burst: 1}, DefaultEditRule())

	allowed, _ := l.AllowModel("client-a")
	assert.True(t, allowed)
	allowed, _ = l.AllowModel("client-a")
	assert.False(t, allowed)

	time.Sleep(50 * time.Millisecond)
	allowed, _ = l.AllowModel("client-a")
	assert.True(t, allowed)
}
