package terminology

import (
	"context"
	"fmt"
)

// MemRepo is an in-memory CatalogRepository seeded at construction.
// The backing slice is never mutated after construction, so reads are safe
// without locking.
type MemRepo struct {
	records []Record
	byCode  map[string]int
}

// NewMemRepo creates an in-memory repository over the given records.
func NewMemRepo(records []Record) *MemRepo {
	byCode := make(map[string]int, len(records))
	for i, r := range records {
		byCode[r.Code] = i
	}
	return &MemRepo{records: records, byCode: byCode}
}

func (r *MemRepo) All(_ context.Context) ([]Record, error) {
	return r.records, nil
}

func (r *MemRepo) GetByCode(_ context.Context, code string) (*Record, error) {
	i, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("code %s not found", code)
	}
	return &r.records[i], nil
}
