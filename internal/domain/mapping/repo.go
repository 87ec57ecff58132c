package mapping

import "context"

// Repository persists saved mappings.
type Repository interface {
	Insert(ctx context.Context, m *SavedMapping) error
	ListByPatient(ctx context.Context, patientID string, limit int) ([]*SavedMapping, error)
}
