// Package hdcache maps content IDs to their derived high-definition playback
// URLs. It is a pure cache: every entry is re-derivable from the content ID,
// so losing it is harmless and no locking beyond atomic single-key upsert is
// needed.
package hdcache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Put(ctx context.Context, contentID, hdURL string)
	Get(ctx context.Context, contentID string) (string, bool)
}

// Memory is the in-process implementation, used when redis is not
// configured and in tests.
type Memory struct {
	mu   sync.RWMutex
	urls map[string]string
}

func NewMemory() *Memory {
	return &Memory{urls: make(map[string]string)}
}

func (m *Memory) Put(_ context.Context, contentID, hdURL string) {
	m.mu.Lock()
	m.urls[contentID] = hdURL
	m.mu.Unlock()
}

func (m *Memory) Get(_ context.Context, contentID string) (string, bool) {
	m.mu.RLock()
	hdURL, ok := m.urls[contentID]
	m.mu.RUnlock()
	return hdURL, ok
}

const redisTTL = 24 * time.Hour

// Redis shares the cache across instances. Errors are swallowed: a failed
// upsert or lookup behaves like a miss.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Put(ctx context.Context, contentID, hdURL string) {
	r.client.Set(ctx, "hd_url:"+contentID, hdURL, redisTTL)
}

func (r *Redis) Get(ctx context.Context, contentID string) (string, bool) {
	hdURL, err := r.client.Get(ctx, "hd_url:"+contentID).Result()
	if err != nil {
		return "", false
	}
	return hdURL, true
}
