package mapping

import (
	"context"
	"sync"
)

// MemRepo is a thread-safe in-memory Repository for development and tests.
type MemRepo struct {
	mu       sync.RWMutex
	mappings []*SavedMapping
}

// NewMemRepo creates an empty in-memory repository.
func NewMemRepo() *MemRepo {
	return &MemRepo{}
}

func (r *MemRepo) Insert(_ context.Context, m *SavedMapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.mappings = append(r.mappings, &cp)
	return nil
}

func (r *MemRepo) ListByPatient(_ context.Context, patientID string, limit int) ([]*SavedMapping, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*SavedMapping
	for i := len(r.mappings) - 1; i >= 0 && len(results) < limit; i-- {
		if r.mappings[i].PatientID == patientID {
			results = append(results, r.mappings[i])
		}
	}
	return results, nil
}
