package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"homedesignai/internal/chain"
)

const maxSessionLayouts = 50

// InMemoryStore is a thread-safe store used when a database is not configured.
// It keeps the most recent layouts for the running session only.
type InMemoryStore struct {
	mu      sync.RWMutex
	layouts []Layout
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{layouts: make([]Layout, 0)}
}

// CreateLayout appends a layout to the in-memory history, newest first.
func (s *InMemoryStore) CreateLayout(_ context.Context, input Layout) (Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	if input.CreatedAt.IsZero() {
		input.CreatedAt = time.Now()
	}
	if input.TextAttempts == nil {
		input.TextAttempts = []chain.Attempt{}
	}
	if input.ImageAttempts == nil {
		input.ImageAttempts = []chain.Attempt{}
	}

	s.layouts = append([]Layout{input}, s.layouts...)
	if len(s.layouts) > maxSessionLayouts {
		s.layouts = s.layouts[:maxSessionLayouts]
	}

	return input, nil
}

// ListLayouts returns a snapshot of stored layouts, newest first.
func (s *InMemoryStore) ListLayouts(_ context.Context) ([]Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]Layout, len(s.layouts))
	copy(snapshot, s.layouts)
	return snapshot, nil
}

// GetLayout returns a layout by ID.
func (s *InMemoryStore) GetLayout(_ context.Context, id string) (Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.layouts {
		if l.ID == id {
			return l, nil
		}
	}
	return Layout{}, ErrNotFound
}

// DeleteLayout removes a layout by ID.
func (s *InMemoryStore) DeleteLayout(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, l := range s.layouts {
		if l.ID == id {
			s.layouts = append(s.layouts[:idx], s.layouts[idx+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Close satisfies the Store interface.
func (s *InMemoryStore) Close() {}
