package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get() hit on empty cache")
	}

	if err := c.Set(ctx, "graph:abc", []byte("payload"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "graph:abc")
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, "graph:abc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "graph:abc"); hit {
		t.Error("Get() hit after Delete()")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "fleeting", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "fleeting"); hit {
		t.Error("Get() hit on expired entry")
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("NullCache returned a hit")
	}
}

func TestKeyerDistinguishesOptions(t *testing.T) {
	k := NewDefaultKeyer()

	base := GraphKeyOpts{LinkThreshold: 60, Seed: 42}
	same := k.GraphKey("galaxy-1", base)
	if same != k.GraphKey("galaxy-1", base) {
		t.Error("identical options produced different keys")
	}

	variants := []GraphKeyOpts{
		{LinkThreshold: 61, Seed: 42},
		{LinkThreshold: 60, Seed: 43},
		{LinkThreshold: 60, Seed: 42, LongRangeChance: 0.1},
		{LinkThreshold: 60, Seed: 42, ProjScale: 2},
	}
	for i, v := range variants {
		if k.GraphKey("galaxy-1", v) == same {
			t.Errorf("variant %d collided with base key", i)
		}
	}

	if k.GraphKey("galaxy-2", base) == same {
		t.Error("different galaxies share a key")
	}
	if k.SectorsKey("galaxy-1") == k.SectorsKey("galaxy-2") {
		t.Error("different galaxies share a sectors key")
	}
}

func TestScopedKeyer(t *testing.T) {
	k := NewScopedKeyer(nil, "staging:")

	key := k.SectorsKey("galaxy-1")
	if !strings.HasPrefix(key, "staging:sectors:") {
		t.Errorf("key = %q, want staging:sectors: prefix", key)
	}
}

func TestHashStable(t *testing.T) {
	a := Hash([]byte("starchart"))
	b := Hash([]byte("starchart"))
	if a != b {
		t.Error("Hash is not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("Hash length = %d, want 64", len(a))
	}
	if a == Hash([]byte("startchart")) {
		t.Error("distinct inputs collided")
	}
}
