package cache

import (
	"context"
	"sync"

	"car-cost-engine/internal/models"
)

// MemoryCache is an in-process ResultCache used in tests and as a fallback
// when no Redis address is configured.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]*models.CostBreakdown
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]*models.CostBreakdown),
	}
}

// Get returns the cached breakdown for a key.
func (m *MemoryCache) Get(_ context.Context, key string) (*models.CostBreakdown, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	breakdown, ok := m.data[key]
	if !ok {
		return nil, false
	}
	copied := *breakdown
	return &copied, true
}

// Set stores a breakdown under the key.
func (m *MemoryCache) Set(_ context.Context, key string, breakdown *models.CostBreakdown) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *breakdown
	m.data[key] = &copied
	return nil
}

// Len reports the number of cached entries.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
