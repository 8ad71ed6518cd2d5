package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// stateRepo implements StateRepo on the app_state table.
type stateRepo struct {
	db *sql.DB
}

func (r *stateRepo) Load(ctx context.Context, key string) (json.RawMessage, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM app_state WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state %q: %w", key, err)
	}
	return json.RawMessage(value), nil
}

func (r *stateRepo) Save(ctx context.Context, key string, value json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save state %q: %w", key, err)
	}
	return nil
}

func (r *stateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM app_state WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}
