package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a Postgres-backed audit repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Insert(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return fmt.Errorf("encode audit data: %w", err)
		}
		_, err = r.pool.Exec(ctx,
			`INSERT INTO audit_entries (id, recorded_at, action, session_id, data)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO NOTHING`,
			e.ID, e.Timestamp, e.Action, e.SessionID, data)
		if err != nil {
			return fmt.Errorf("insert audit entry: %w", err)
		}
	}
	return nil
}

// PGSink adapts a Repository to the Sink interface so the recorder can flush
// straight into Postgres.
type PGSink struct{ repo Repository }

// NewPGSink wraps repo as a Sink.
func NewPGSink(repo Repository) *PGSink {
	return &PGSink{repo: repo}
}

func (s *PGSink) Publish(ctx context.Context, entries []Entry) error {
	return s.repo.Insert(ctx, entries)
}
