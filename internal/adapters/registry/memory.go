package registry

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	email     string
	expiresAt time.Time
}

// Memory is the in-process TokenRegistry. Entries do not survive a
// restart; deployments that need a shared or durable registry use the
// Redis implementation instead.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemory creates an in-memory registry. A ttl of zero disables entry
// expiry.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Store inserts or overwrites the mapping for token.
func (m *Memory) Store(_ context.Context, token, email string) error {
	e := memoryEntry{email: email}
	if m.ttl > 0 {
		e.expiresAt = time.Now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[token] = e
	m.mu.Unlock()
	return nil
}

// Redeem removes the entry under the lock, so concurrent redemptions of
// the same token see exactly one winner.
func (m *Memory) Redeem(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[token]
	if !ok {
		return "", ErrNotFound
	}
	delete(m.entries, token)

	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return "", ErrNotFound
	}
	return e.email, nil
}

// PruneExpired drops expired entries and returns how many were removed.
func (m *Memory) PruneExpired() int {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for token, e := range m.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(m.entries, token)
			pruned++
		}
	}
	return pruned
}

// Len reports the number of live entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
