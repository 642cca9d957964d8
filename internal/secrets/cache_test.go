package secrets

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecretCache(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := newSecretCache(time.Minute)

	cache.put("db-password", "s3cret", now)

	value, ok := cache.get("db-password", now.Add(30*time.Second))
	assert.True(t, ok)
	assert.Equal(t, "s3cret", value)

	_, ok = cache.get("db-password", now.Add(time.Minute))
	assert.False(t, ok, "entry expires at exactly its TTL")

	_, ok = cache.get("db-password", now)
	assert.False(t, ok, "expired entry is evicted")
}

func TestSecretCache_Nil(t *testing.T) {
	var cache *secretCache
	cache.put("key", "value", time.Now())
	_, ok := cache.get("key", time.Now())
	assert.False(t, ok)
}

func TestSecretCache_ConcurrentAccess(t *testing.T) {
	cache := newSecretCache(0)
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.put("shared", "v", now)
			cache.get("shared", now)
		}()
	}
	wg.Wait()

	value, ok := cache.get("shared", now)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
