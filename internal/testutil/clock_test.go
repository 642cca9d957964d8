package testutil_test

import (
	"sync"
	"testing"
	"time"

	"github.com/straye-as/repair-quote-api/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClock_ConcurrentAdvance(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	clock := testutil.NewClock(start)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			clock.Advance(time.Minute)
		}()
		go func() {
			defer wg.Done()
			assert.False(t, clock.Now().Before(start))
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(50*time.Minute), clock.Now())
}
