package terminology

import "context"

// CatalogRepository provides read access to the terminology catalog.
type CatalogRepository interface {
	// All returns every catalog record in stable catalog order.
	All(ctx context.Context) ([]Record, error)
	// GetByCode looks up a single record by its NAMASTE code.
	GetByCode(ctx context.Context, code string) (*Record, error)
}
