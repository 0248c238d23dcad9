package splitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerStartsClosed(t *testing.T) {
	b := NewBreaker(15 * time.Second)

	assert.False(t, b.Open())
}

func TestBreakerOpensOnTrip(t *testing.T) {
	now := time.Unix(1000, 0)
	b := NewBreaker(15 * time.Second)
	b.now = func() time.Time { return now }

	b.Trip()

	assert.True(t, b.Open())
}

func TestBreakerClosesAfterCooldown(t *testing.T) {
	now := time.Unix(1000, 0)
	b := NewBreaker(15 * time.Second)
	b.now = func() time.Time { return now }

	b.Trip()
	now = now.Add(14 * time.Second)
	assert.True(t, b.Open())

	now = now.Add(time.Second)
	assert.False(t, b.Open())
}

// TestBreakerReTrip: a failed re-probe opens a fresh full window.
func TestBreakerReTrip(t *testing.T) {
	now := time.Unix(1000, 0)
	b := NewBreaker(15 * time.Second)
	b.now = func() time.Time { return now }

	b.Trip()
	now = now.Add(20 * time.Second)
	assert.False(t, b.Open())

	b.Trip()
	now = now.Add(10 * time.Second)
	assert.True(t, b.Open())
}
