package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewFixedWindowRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("1.2.3.4")
		assert.True(t, allowed)
	}

	allowed, retryAfter := rl.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestSourcesAreIndependent(t *testing.T) {
	rl := NewFixedWindowRateLimiter(1, time.Minute)
	defer rl.Close()

	allowed, _ := rl.Allow("1.2.3.4")
	require.True(t, allowed)

	allowed, _ = rl.Allow("1.2.3.4")
	require.False(t, allowed)

	allowed, _ = rl.Allow("5.6.7.8")
	assert.True(t, allowed, "another source has its own window")
}

func TestWindowResets(t *testing.T) {
	rl := NewFixedWindowRateLimiter(1, 20*time.Millisecond)
	defer rl.Close()

	allowed, _ := rl.Allow("1.2.3.4")
	require.True(t, allowed)

	allowed, _ = rl.Allow("1.2.3.4")
	require.False(t, allowed)

	time.Sleep(30 * time.Millisecond)

	allowed, _ = rl.Allow("1.2.3.4")
	assert.True(t, allowed)
}
