package audit

import (
	"context"
	"sync"
)

// MemRepo is a thread-safe in-memory Repository for development and tests.
type MemRepo struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemRepo creates an empty in-memory repository.
func NewMemRepo() *MemRepo {
	return &MemRepo{}
}

func (r *MemRepo) Insert(_ context.Context, entries []Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
	return nil
}

// All returns a copy of every stored entry.
func (r *MemRepo) All() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}
