package hdcache

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_PutGet(t *testing.T) {
	cache := NewMemory()
	ctx := context.Background()

	cache.Put(ctx, "v1", "https://cdn.example/hd/v1.mp4")

	url, ok := cache.Get(ctx, "v1")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example/hd/v1.mp4", url)
}

func TestMemory_Miss(t *testing.T) {
	cache := NewMemory()

	url, ok := cache.Get(context.Background(), "unknown")
	assert.False(t, ok)
	assert.Equal(t, "", url)
}

func TestMemory_Overwrite(t *testing.T) {
	cache := NewMemory()
	ctx := context.Background()

	cache.Put(ctx, "v1", "first")
	cache.Put(ctx, "v1", "second")

	url, _ := cache.Get(ctx, "v1")
	assert.Equal(t, "second", url)
}

func TestMemory_ConcurrentUpserts(t *testing.T) {
	cache := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("v%d", i%10)
			cache.Put(ctx, id, "url")
			cache.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		_, ok := cache.Get(ctx, fmt.Sprintf("v%d", i))
		assert.True(t, ok)
	}
}
