package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stackmart/shophub/internal/cache"
)

func TestMemorySetGet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(time.Minute)

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("got a hit for a missing key")
	}

	c.Set(ctx, "k", []byte("v"))

	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("got %q/%v, want v/true", got, ok)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(10 * time.Millisecond)

	c.Set(ctx, "k", []byte("v"))
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expired entry still served")
	}
}

// Bumping a namespace changes every derived list key, so stale entries
// become unreachable without being deleted one by one.
func TestVersionedInvalidation(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(time.Minute)

	before := cache.ListKey("products", c.Version(ctx, "products"), "widget")
	c.Set(ctx, before, []byte(`[{"name":"Widget"}]`))

	c.Bump(ctx, "products")

	after := cache.ListKey("products", c.Version(ctx, "products"), "widget")
	if after == before {
		t.Fatal("key unchanged after version bump")
	}

	if _, ok := c.Get(ctx, after); ok {
		t.Fatal("new-version key should miss")
	}
}
