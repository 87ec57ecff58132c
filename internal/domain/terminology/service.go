package terminology

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrQueryTooShort is returned for empty or single-character queries; no
// search is performed for them.
var ErrQueryTooShort = errors.New("query must be at least 2 characters")

const defaultLimit = 10

// Service provides terminology search and lookup over a catalog loaded once
// at construction. The catalog is immutable for the life of the service.
type Service struct {
	catalog []Record
	repo    CatalogRepository
}

// NewService loads the full catalog from the repository and returns a
// service bound to that snapshot.
func NewService(ctx context.Context, repo CatalogRepository) (*Service, error) {
	catalog, err := repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return &Service{catalog: catalog, repo: repo}, nil
}

// Search ranks the catalog against the query. Queries shorter than two
// characters are rejected with ErrQueryTooShort before any ranking happens.
// An empty filter means no system-type filtering.
func (s *Service) Search(_ context.Context, query, filter string, limit int) ([]ScoredRecord, error) {
	if utf8.RuneCountInString(query) < 2 {
		return nil, ErrQueryTooShort
	}
	if filter == "" {
		filter = FilterAll
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return Search(query, s.catalog, filter, limit), nil
}

// Lookup returns the catalog record for a NAMASTE code.
func (s *Service) Lookup(ctx context.Context, code string) (*Record, error) {
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	return s.repo.GetByCode(ctx, code)
}

// Exists reports whether a NAMASTE code is present in the catalog.
func (s *Service) Exists(ctx context.Context, code string) bool {
	rec, err := s.repo.GetByCode(ctx, code)
	return err == nil && rec != nil
}

// CatalogSize reports how many records the loaded catalog holds.
func (s *Service) CatalogSize() int {
	return len(s.catalog)
}
