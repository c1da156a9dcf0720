package utility

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache(t *testing.T) (*memoryCacheService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	svc := newMemoryCacheService(time.Hour)
	svc.now = clock.Now
	t.Cleanup(svc.Stop)
	return svc, clock
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	v, err := svc.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, svc.Set(ctx, "k", []byte("v"), 0))
	v, err = svc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, svc.Delete(ctx, "k"))
	v, _ = svc.Get(ctx, "k")
	assert.Empty(t, v)
}

func TestMemoryCache_Expiration(t *testing.T) {
	svc, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", "v", time.Minute))
	clock.Advance(30 * time.Second)
	v, _ := svc.Get(ctx, "k")
	assert.Equal(t, "v", v)

	// Expire 延长过期时间
	require.NoError(t, svc.Expire(ctx, "k", time.Minute))
	clock.Advance(45 * time.Second)
	v, _ = svc.Get(ctx, "k")
	assert.Equal(t, "v", v)

	clock.Advance(time.Minute)
	v, _ = svc.Get(ctx, "k")
	assert.Empty(t, v)

	assert.NoError(t, svc.Expire(ctx, "k", time.Minute))
}

func TestMemoryCache_IncrementKeepsExpiry(t *testing.T) {
	svc, clock := newTestCache(t)
	ctx := context.Background()

	n, err := svc.Increment(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, svc.Expire(ctx, "c", time.Minute))

	n, err = svc.Increment(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	clock.Advance(2 * time.Minute)
	n, err = svc.Increment(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCache_IncrementConcurrent(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Increment(ctx, "hits")
		}()
	}
	wg.Wait()

	v, _ := svc.Get(ctx, "hits")
	assert.Equal(t, "50", v)
}

func TestMemoryCache_IncrementNonInteger(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "s", "abc", 0))
	_, err := svc.Increment(ctx, "s")
	assert.Error(t, err)
}

func TestMemoryCache_Scan(t *testing.T) {
	svc, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "blogcms:comment:session:a", "1", 0))
	require.NoError(t, svc.Set(ctx, "blogcms:comment:session:b", "1", time.Second))
	require.NoError(t, svc.Set(ctx, "blogcms:stats:x", "1", 0))

	keys, err := svc.Scan(ctx, "blogcms:comment:session:*")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"blogcms:comment:session:a", "blogcms:comment:session:b"}, keys)

	clock.Advance(2 * time.Second)
	keys, _ = svc.Scan(ctx, "blogcms:comment:session:*")
	assert.Equal(t, []string{"blogcms:comment:session:a"}, keys)
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		s, pattern string
		want       bool
	}{
		{"abc", "abc", true},
		{"abc", "abd", false},
		{"abc", "a*", true},
		{"abc", "*c", true},
		{"abc", "a*c", true},
		{"a", "a*a", false},
		{"stats:comment:20261001", "stats:*:2026*", true},
		{"stats:comment", "stats:*:2026*", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.s, tt.pattern), "%s ~ %s", tt.s, tt.pattern)
	}
}

func TestMemoryCache_StopIsIdempotent(t *testing.T) {
	svc := newMemoryCacheService(time.Millisecond)
	svc.Stop()
	svc.Stop()
}

func TestGetCacheServiceType(t *testing.T) {
	svc := NewCacheServiceWithFallback(nil)
	defer StopCacheService(svc)
	assert.Equal(t, CacheTypeMemory, GetCacheServiceType(svc))
}
