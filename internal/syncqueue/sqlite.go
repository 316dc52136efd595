package syncqueue

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLiteStore persists the offline store in a local SQLite database so
// queued uploads and cached documents survive restarts.
type SQLiteStore struct {
	db *sqlx.DB
}

const kvSchema = `
CREATE TABLE IF NOT EXISTS offline_kv (
    namespace  TEXT NOT NULL,
    key        TEXT NOT NULL,
    value      BLOB NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (namespace, key)
);
`

func NewSQLiteStore(db *sqlx.DB) (*SQLiteStore, error) {
	_, err := db.Exec(kvSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to create offline store schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ns, key string, value []byte) error {
	query := `INSERT INTO offline_kv (namespace, key, value, created_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (namespace, key) DO UPDATE SET value = $3`

	_, err := s.db.Exec(query, ns, key, value, time.Now())
	return err
}

func (s *SQLiteStore) Get(ns, key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM offline_kv WHERE namespace = $1 AND key = $2`

	err := s.db.Get(&value, query, ns, key)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}

	return value, err
}

func (s *SQLiteStore) Delete(ns, key string) error {
	_, err := s.db.Exec(`DELETE FROM offline_kv WHERE namespace = $1 AND key = $2`, ns, key)
	return err
}

func (s *SQLiteStore) List(ns string) ([][]byte, error) {
	var values [][]byte
	query := `SELECT value FROM offline_kv WHERE namespace = $1 ORDER BY created_at, key`

	err := s.db.Select(&values, query, ns)
	if err != nil {
		return nil, err
	}

	return values, nil
}

func (s *SQLiteStore) Keys(ns string) ([]string, error) {
	var keys []string
	query := `SELECT key FROM offline_kv WHERE namespace = $1 ORDER BY created_at, key`

	err := s.db.Select(&keys, query, ns)
	if err != nil {
		return nil, err
	}

	return keys, nil
}

func (s *SQLiteStore) Clear(ns string) error {
	_, err := s.db.Exec(`DELETE FROM offline_kv WHERE namespace = $1`, ns)
	return err
}
