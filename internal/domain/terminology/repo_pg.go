package terminology

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogRepoPG struct{ pool *pgxpool.Pool }

// NewCatalogRepoPG creates a Postgres-backed catalog repository.
func NewCatalogRepoPG(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepoPG{pool: pool}
}

func (r *catalogRepoPG) All(ctx context.Context) ([]Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT namaste_code, display_english, display_local, system_type,
		        COALESCE(synonyms, '[]'::jsonb), mapped_code, mapped_display,
		        COALESCE(description, ''), confidence, usage_count
		 FROM terminology_catalog
		 ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("catalog list: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *catalogRepoPG) GetByCode(ctx context.Context, code string) (*Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT namaste_code, display_english, display_local, system_type,
		        COALESCE(synonyms, '[]'::jsonb), mapped_code, mapped_display,
		        COALESCE(description, ''), confidence, usage_count
		 FROM terminology_catalog WHERE namaste_code = $1`, code)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("catalog get: %w", err)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var synonymsJSON []byte
	if err := row.Scan(&rec.Code, &rec.DisplayEnglish, &rec.DisplayLocal, &rec.System,
		&synonymsJSON, &rec.MappedCode, &rec.MappedDisplay, &rec.Description,
		&rec.Confidence, &rec.UsageCount); err != nil {
		return nil, err
	}
	if len(synonymsJSON) > 0 {
		if err := json.Unmarshal(synonymsJSON, &rec.Synonyms); err != nil {
			return nil, fmt.Errorf("decode synonyms for %s: %w", rec.Code, err)
		}
	}
	return &rec, nil
}

// SeedCatalog inserts records into the catalog table, replacing entries that
// already exist. Used by the `catalog seed` command.
func SeedCatalog(ctx context.Context, pool *pgxpool.Pool, records []Record) (int, error) {
	var count int
	for i, rec := range records {
		synonyms, err := json.Marshal(rec.Synonyms)
		if err != nil {
			return count, fmt.Errorf("encode synonyms for %s: %w", rec.Code, err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO terminology_catalog
			   (ordinal, namaste_code, display_english, display_local, system_type,
			    synonyms, mapped_code, mapped_display, description, confidence, usage_count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (namaste_code) DO UPDATE SET
			   ordinal = EXCLUDED.ordinal,
			   display_english = EXCLUDED.display_english,
			   display_local = EXCLUDED.display_local,
			   system_type = EXCLUDED.system_type,
			   synonyms = EXCLUDED.synonyms,
			   mapped_code = EXCLUDED.mapped_code,
			   mapped_display = EXCLUDED.mapped_display,
			   description = EXCLUDED.description,
			   confidence = EXCLUDED.confidence,
			   usage_count = EXCLUDED.usage_count`,
			i, rec.Code, rec.DisplayEnglish, rec.DisplayLocal, rec.System,
			synonyms, rec.MappedCode, rec.MappedDisplay, rec.Description,
			rec.Confidence, rec.UsageCount)
		if err != nil {
			return count, fmt.Errorf("seed %s: %w", rec.Code, err)
		}
		count++
	}
	return count, nil
}
