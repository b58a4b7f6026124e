package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/kinship/pkg/graph"
)

// MemoryStore is an in-process Store. It is safe for concurrent use and
// hands out copies, so callers cannot modify stored layouts.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]graph.Layout
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]graph.Layout), now: time.Now}
}

// Save implements [Store].
func (s *MemoryStore) Save(_ context.Context, l *graph.Layout) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := prepare(l, s.now()); err != nil {
		return "", err
	}
	s.layouts[l.ID] = *l
	return l.ID, nil
}

// Get implements [Store].
func (s *MemoryStore) Get(_ context.Context, id string) (*graph.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

// List implements [Store].
func (s *MemoryStore) List(_ context.Context, root string, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.layouts))
	for _, l := range s.layouts {
		if root == "" || l.Root == root {
			out = append(out, summarize(&l))
		}
	}
	slices.SortFunc(out, func(a, b Summary) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	if limit = normalizeLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete implements [Store].
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[id]; !ok {
		return ErrNotFound
	}
	delete(s.layouts, id)
	return nil
}

// Close implements [Store].
func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
