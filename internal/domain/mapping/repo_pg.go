package mapping

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a Postgres-backed mapping repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Insert(ctx context.Context, m *SavedMapping) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO saved_mappings (id, patient_id, visit_id, namaste_code, icd10_code, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.PatientID, m.VisitID, m.NamasteCode, m.ICD10Code, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert mapping: %w", err)
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID string, limit int) ([]*SavedMapping, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, patient_id, visit_id, namaste_code, icd10_code, created_at
		 FROM saved_mappings
		 WHERE patient_id = $1
		 ORDER BY created_at DESC LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	defer rows.Close()

	var results []*SavedMapping
	for rows.Next() {
		var m SavedMapping
		if err := rows.Scan(&m.ID, &m.PatientID, &m.VisitID, &m.NamasteCode, &m.ICD10Code, &m.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, &m)
	}
	return results, rows.Err()
}
