// internal/platform/cache/cache_test.go
package cache

import (
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(10)

	c.Set("key1", "value1", time.Minute)

	v, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if v.(string) != "value1" {
		t.Errorf("got %v, want value1", v)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	c := NewMemoryCache(10)

	c.Set("ephemeral", 42, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("ephemeral"); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Errorf("expired entry should be evicted on read, size = %d", c.Size())
	}
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryCache(10)

	c.Set("forever", true, 0)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("forever"); !ok {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	c := NewMemoryCache(2)

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	// touch "a" so "b" becomes the LRU victim
	c.Get("a")
	c.Set("c", 3, time.Minute)

	if _, ok := c.Get("b"); ok {
		t.Error("lru entry should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry should survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("new entry should be present")
	}
}

func TestMemoryCacheUpdateExisting(t *testing.T) {
	c := NewMemoryCache(2)

	c.Set("k", "old", time.Minute)
	c.Set("k", "new", time.Minute)

	if c.Size() != 1 {
		t.Errorf("size = %d, want 1 after update", c.Size())
	}
	v, _ := c.Get("k")
	if v.(string) != "new" {
		t.Errorf("got %v, want new", v)
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(10)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Clear()

	if c.Size() != 0 {
		t.Errorf("size = %d after clear, want 0", c.Size())
	}
}

func TestMemoryCacheDefaultCapacity(t *testing.T) {
	c := NewMemoryCache(0)
	if c.Capacity() != 100 {
		t.Errorf("capacity = %d, want default 100", c.Capacity())
	}
}
