package cache

import (
	"context"
	"testing"
	"time"

	"github.com/nutriscope/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(1 * time.Minute)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{
			name:  "store and retrieve string",
			key:   "off:milk",
			value: "test-value",
		},
		{
			name: "store and retrieve item slice",
			key:  "usda:chicken breast",
			value: []domain.CanonicalFoodItem{
				{ID: "usda:12345", Name: "Chicken Breast", Source: domain.SourceRawIngredient},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got == nil {
				t.Error("Get() returned nil value")
			}
		})
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := NewMemoryCache(1 * time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, "non-existent-key")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache(1 * time.Millisecond)
	ctx := context.Background()

	if err := cache.Set(ctx, "short-lived", "value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err := cache.Get(ctx, "short-lived")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() after expiration error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_OverwriteRefreshesEntry(t *testing.T) {
	cache := NewMemoryCache(1 * time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", "old"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Set(ctx, "key", "new"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "new" {
		t.Errorf("Get() = %v, want new", got)
	}
	if size := cache.Size(); size != 1 {
		t.Errorf("Size() = %d, want 1 after overwrite", size)
	}
}

func TestMemoryCache_Size(t *testing.T) {
	cache := NewMemoryCache(1 * time.Minute)
	ctx := context.Background()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 for empty cache", size)
	}

	for i := 0; i < 5; i++ {
		key := string(rune('a' + i))
		if err := cache.Set(ctx, key, i); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	if size := cache.Size(); size != 5 {
		t.Errorf("Size() = %d, want 5", size)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := NewMemoryCache(1 * time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := string(rune('a' + i))
		if err := cache.Set(ctx, key, i); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	cache.Clear()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}

	for i := 0; i < 5; i++ {
		key := string(rune('a' + i))
		_, err := cache.Get(ctx, key)
		if err != domain.ErrCacheMiss {
			t.Errorf("Get(%s) after clear error = %v, want %v", key, err, domain.ErrCacheMiss)
		}
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache(1 * time.Minute)
	ctx := context.Background()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := string(rune('a' + id))
			if err := cache.Set(ctx, key, id); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			if _, err := cache.Get(ctx, key); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
