package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const upsertMySQL = `INSERT INTO kv_state (state_key, state_value)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE state_value = VALUES(state_value)`

const upsertSQLite = `INSERT INTO kv_state (state_key, state_value)
		VALUES (?, ?)
		ON CONFLICT (state_key) DO UPDATE SET state_value = excluded.state_value, updated_at = CURRENT_TIMESTAMP`

// SQLStore keeps values in the kv_state table of a MySQL or SQLite database.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore creates a SQLStore. The kv_state table must already exist.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, Status, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, "SELECT state_value FROM kv_state WHERE state_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Absent, nil
	}
	if err != nil {
		return nil, Unloaded, fmt.Errorf("db.GetContext(kv_state) > %w", err)
	}
	return value, Loaded, nil
}

func (s *SQLStore) Save(ctx context.Context, key string, value []byte) error {
	query := upsertMySQL
	if s.db.DriverName() == "sqlite3" {
		query = upsertSQLite
	}
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("db.ExecContext(upsert kv_state) > %w", err)
	}
	return nil
}
