package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// submissionRepo implements SubmissionRepo on the submissions table.
type submissionRepo struct {
	db *sql.DB
}

func (r *submissionRepo) Append(ctx context.Context, rec SubmissionRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO submissions (instrument, endpoint, ok, error, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.Instrument, rec.Endpoint, rec.OK, rec.Error, createdAt,
	)
	if err != nil {
		return fmt.Errorf("append submission: %w", err)
	}
	return nil
}

func (r *submissionRepo) Recent(ctx context.Context, limit int) ([]SubmissionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, instrument, endpoint, ok, error, created_at FROM submissions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []SubmissionRecord
	for rows.Next() {
		var rec SubmissionRecord
		if err := rows.Scan(&rec.ID, &rec.Instrument, &rec.Endpoint, &rec.OK, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}
