package productgrid

import (
	"context"
	"sync"
	"time"
)

// CursorStore persists the grid cursor outside a single grid mount, keyed by page session.
// Implementations never fail the caller: a missing or unreadable cursor reads as zero.
type CursorStore interface {
	Cursor(ctx context.Context, key string) int
	SetCursor(ctx context.Context, key string, n int)
}

type nopStore struct{}

func (nopStore) Cursor(context.Context, string) int     { return 0 }
func (nopStore) SetCursor(context.Context, string, int) {}

// DefaultCursorTTL bounds how long an idle page session keeps its cursor.
const DefaultCursorTTL = 2 * time.Hour

type memoryEntry struct {
	cursor    int
	expiresAt time.Time
}

// MemoryStore is a process-wide CursorStore with idle expiry.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns a store whose entries expire after ttl without access.
// A non-positive ttl uses DefaultCursorTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultCursorTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Cursor returns the stored cursor for key, or zero when absent or expired.
func (s *MemoryStore) Cursor(_ context.Context, key string) int {
	if key == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok {
		return 0
	}
	if now.After(entry.expiresAt) {
		delete(s.entries, key)
		return 0
	}
	entry.expiresAt = now.Add(s.ttl)
	s.entries[key] = entry
	return entry.cursor
}

// SetCursor records n for key. Negative values are stored as zero.
func (s *MemoryStore) SetCursor(_ context.Context, key string, n int) {
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{cursor: max(n, 0), expiresAt: s.now().Add(s.ttl)}
}

// Sweep drops expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live and not yet swept entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = s.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
