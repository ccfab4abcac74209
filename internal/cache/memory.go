package cache

import (
	"context"
	"sync"
	"time"
)

const defaultMaxEntries = 128

type memoryEntry struct {
	value     []byte
	fetchedAt time.Time
}

// Memory is an in-process TTL cache bounded by entry count.
type Memory struct {
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]memoryEntry
	now        func() time.Time
}

// NewMemory builds an in-process cache. maxEntries <= 0 uses the default bound.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Memory{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]memoryEntry),
		now:        time.Now,
	}
}

// Get returns a copy of the cached value when present and fresh.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || m.now().Sub(entry.fetchedAt) >= m.ttl {
		return nil, false, nil
	}
	return append([]byte(nil), entry.value...), true, nil
}

// Set stores value, evicting expired entries and then the oldest one when full.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evictLocked(now)
	}
	m.entries[key] = memoryEntry{value: append([]byte(nil), value...), fetchedAt: now}
	return nil
}

// Len reports the number of stored entries, fresh or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) evictLocked(now time.Time) {
	for key, entry := range m.entries {
		if now.Sub(entry.fetchedAt) >= m.ttl {
			delete(m.entries, key)
		}
	}
	if len(m.entries) < m.maxEntries {
		return
	}
	var oldestKey string
	var oldest time.Time
	for key, entry := range m.entries {
		if oldestKey == "" || entry.fetchedAt.Before(oldest) {
			oldestKey = key
			oldest = entry.fetchedAt
		}
	}
	delete(m.entries, oldestKey)
}
