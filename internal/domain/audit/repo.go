package audit

import "context"

// Repository persists audit entries received by the ingestion endpoint.
type Repository interface {
	Insert(ctx context.Context, entries []Entry) error
}
