package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and sessions without
// persistent history
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	entries []Entry
}

// NewMemoryStore creates an empty store keeping at most limit entries
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{limit: limit}
}

// Append records line unless it is blank or repeats the newest entry
func (s *MemoryStore) Append(ctx context.Context, line string) error {
	if isBlank(line) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.entries); n > 0 && s.entries[n-1].Line == line {
		return nil
	}
	s.entries = append(s.entries, Entry{ID: uuid.NewString(), Line: line, CreatedAt: time.Now().UTC()})
	if over := len(s.entries) - s.limit; over > 0 {
		s.entries = append([]Entry(nil), s.entries[over:]...)
	}
	return nil
}

// List returns the newest limit entries oldest first
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(s.entries) {
		start = len(s.entries) - limit
	}
	return append([]Entry(nil), s.entries[start:]...), nil
}

// Clear deletes all entries
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	return nil
}

// Count returns the number of entries
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
