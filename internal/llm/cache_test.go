package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummaryCache(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newSummaryCache(time.Minute)
	c.now = func() time.Time { return now }

	_, found := c.get("missing")
	assert.False(t, found)

	c.set("k", "note")
	got, found := c.get("k")
	assert.True(t, found)
	assert.Equal(t, "note", got)

	now = now.Add(2 * time.Minute)
	_, found = c.get("k")
	assert.False(t, found)
	assert.Equal(t, 0, c.size())
}

func TestSummaryCache_DefaultTTL(t *testing.T) {
	c := newSummaryCache(0)
	assert.Equal(t, 15*time.Minute, c.ttl)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("a", "b"), cacheKey("a", "b"))
	assert.NotEqual(t, cacheKey("a", "b"), cacheKey("ab"))
	assert.Len(t, cacheKey("x"), 64)
}
