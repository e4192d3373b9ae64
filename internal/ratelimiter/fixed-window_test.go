package ratelimiter

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowLimiter(t *testing.T) {
	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		rl := NewFixedWindowLimiter(3, time.Minute)
		defer rl.Stop()

		for i := 0; i < 3; i++ {
			allowed, _ := rl.Allow("10.0.0.1")
			assert.True(t, allowed, "request %d", i+1)
		}

		allowed, retryAfter := rl.Allow("10.0.0.1")
		assert.False(t, allowed)
		assert.Equal(t, time.Minute, retryAfter)
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		rl := NewFixedWindowLimiter(1, time.Minute)
		defer rl.Stop()

		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed)
		allowed, _ = rl.Allow("10.0.0.1")
		assert.False(t, allowed)

		allowed, _ = rl.Allow("10.0.0.2")
		assert.True(t, allowed)
	})

	t.Run("concurrent burst never exceeds the limit", func(t *testing.T) {
		rl := NewFixedWindowLimiter(5, time.Minute)
		defer rl.Stop()

		var allowed atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := rl.Allow("10.0.0.1"); ok {
					allowed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.EqualValues(t, 5, allowed.Load())
	})

	t.Run("window reset readmits a blocked client", func(t *testing.T) {
		rl := NewFixedWindowLimiter(1, 20*time.Millisecond)
		defer rl.Stop()

		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed)
		allowed, _ = rl.Allow("10.0.0.1")
		assert.False(t, allowed)

		assert.Eventually(t, func() bool {
			ok, _ := rl.Allow("10.0.0.1")
			return ok
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("stop is idempotent and leaves state intact", func(t *testing.T) {
		rl := NewFixedWindowLimiter(1, time.Minute)

		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed)

		rl.Stop()
		rl.Stop()

		allowed, _ = rl.Allow("10.0.0.1")
		assert.False(t, allowed)
	})
}
