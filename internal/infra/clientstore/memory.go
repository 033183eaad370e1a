package clientstore

import (
	"context"
	"sync"
	"time"

	"fahasa-storefront/internal/pkg/clock"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryKV keeps entries in process. Used for tests and single-instance development.
type MemoryKV struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries map[string]memoryEntry
}

func NewMemoryKV(clk clock.Clock) *MemoryKV {
	return &MemoryKV{clock: clk, entries: make(map[string]memoryEntry)}
}

func (m *MemoryKV) Get(_ context.Context, namespace, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := namespace + ":" + key
	entry, ok := m.entries[k]
	if !ok {
		return nil, nil
	}
	if m.expired(entry) {
		delete(m.entries, k)
		return nil, nil
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (m *MemoryKV) Put(_ context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: make([]byte, len(value))}
	copy(entry.value, value)
	if ttl > 0 {
		entry.expiresAt = m.clock.Now().Add(ttl)
	}
	m.entries[namespace+":"+key] = entry
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, namespace+":"+key)
	return nil
}

// PurgeExpired drops expired entries and returns how many were removed.
func (m *MemoryKV) PurgeExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for k, entry := range m.entries {
		if m.expired(entry) {
			delete(m.entries, k)
			n++
		}
	}
	return n, nil
}

func (m *MemoryKV) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.clock.Now().Before(entry.expiresAt)
}
