package cache

import (
	"context"
	"sync"
	"time"

	"github.com/aimalabs/meeting-review/internal/domain/entities"
)

// MemorySummaryCache is an in-process summary cache with expiration,
// used when Redis is unreachable so the service still starts.
type MemorySummaryCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]*memoryItem
}

type memoryItem struct {
	summary    *entities.MeetingSummary
	expireTime time.Time
}

// NewMemorySummaryCache creates an in-memory summary cache
func NewMemorySummaryCache(ttl time.Duration) *MemorySummaryCache {
	store := &MemorySummaryCache{
		ttl:   ttl,
		items: make(map[string]*memoryItem),
	}

	// Cleanup goroutine to remove expired items
	go store.cleanupExpired()

	return store
}

// Get returns the cached summary, or ok=false if absent or expired
func (ms *MemorySummaryCache) Get(_ context.Context, meetingFile string) (*entities.MeetingSummary, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[meetingFile]
	if !exists || time.Now().After(item.expireTime) {
		return nil, false, nil
	}
	return item.summary, true, nil
}

// Set stores a summary with the configured TTL
func (ms *MemorySummaryCache) Set(_ context.Context, meetingFile string, summary *entities.MeetingSummary) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[meetingFile] = &memoryItem{
		summary:    summary,
		expireTime: time.Now().Add(ms.ttl),
	}
	return nil
}

// Invalidate removes a cached entry
func (ms *MemorySummaryCache) Invalidate(_ context.Context, meetingFile string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, meetingFile)
	return nil
}

func (ms *MemorySummaryCache) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, item := range ms.items {
			if now.After(item.expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
