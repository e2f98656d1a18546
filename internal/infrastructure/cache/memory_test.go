package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/macrotrack/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value []byte
		ttl   time.Duration
	}{
		{
			name:  "store and retrieve bytes",
			key:   "test-key-1",
			value: []byte("test-value"),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store and retrieve json",
			key:   "test-key-2",
			value: []byte(`{"fdcId":12345,"description":"Milk"}`),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store with short TTL",
			key:   "test-key-3",
			value: []byte("expires-soon"),
			ttl:   1 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, tt.ttl); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			// For short TTL test, wait for expiration
			if tt.ttl < 10*time.Millisecond {
				time.Sleep(10 * time.Millisecond)
				_, err := cache.Get(ctx, tt.key)
				if !errors.Is(err, domain.ErrCacheMiss) {
					t.Errorf("Expected cache miss after expiration, got error = %v", err)
				}
				return
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != string(tt.value) {
				t.Errorf("Get() = %s, want %s", got, tt.value)
			}
		})
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := NewMemoryCache(0)

	_, err := cache.Get(context.Background(), "non-existent-key")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_StoresCopies(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	value := []byte("original")
	if err := cache.Set(ctx, "k", value, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	if string(got) != "original" {
		t.Errorf("cached value mutated through caller slice: %s", got)
	}

	got[0] = 'Y'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("cached value mutated through returned slice: %s", again)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	key := "delete-test"
	if err := cache.Set(ctx, key, []byte("value"), 1*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if _, err := cache.Get(ctx, key); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after delete error = %v, want %v", err, domain.ErrCacheMiss)
	}

	// Deleting a missing key is not an error
	if err := cache.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	cache.Set(ctx, "short", []byte("a"), time.Millisecond)
	cache.Set(ctx, "long", []byte("b"), time.Hour)

	cache.removeExpired(time.Now().Add(time.Second))

	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1", cache.Size())
	}
	if _, err := cache.Get(ctx, "long"); err != nil {
		t.Errorf("long-lived entry removed: %v", err)
	}
}

func TestMemoryCache_CleanupGoroutine(t *testing.T) {
	cache := NewMemoryCache(5 * time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	cache.Set(ctx, "short", []byte("a"), time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for cache.Size() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if cache.Size() != 0 {
		t.Errorf("Size() = %d after cleanup, want 0", cache.Size())
	}

	// Close is idempotent
	cache.Close()
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cache.Set(ctx, fmt.Sprintf("key-%d", i), []byte("v"), time.Minute)
	}
	if cache.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", cache.Size())
	}

	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", cache.Size())
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%10)
			cache.Set(ctx, key, []byte("v"), time.Minute)
			cache.Get(ctx, key)
			if i%7 == 0 {
				cache.Delete(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if cache.Size() > 10 {
		t.Errorf("Size() = %d, want at most 10", cache.Size())
	}
}
