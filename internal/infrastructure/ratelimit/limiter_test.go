package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiterBudgetPerKey(t *testing.T) {
	limiter := NewKeyedLimiter(5, 10*time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("10.0.0.1"))
}

func TestKeyedLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewKeyedLimiter(1, 10*time.Minute)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
}
