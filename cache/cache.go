// Package cache provides the local fallback store: a small sqlite-backed
// key-value table that keeps the last known-good copy of the remote data so
// the site stays usable during a remote outage.
package cache

import (
	"context"
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"
)

// Keys used by the store adapter.
const (
	KeyProjects = "mack_projects"
	KeyLegal    = "mack_legal"
)

// ErrMiss is returned by Get when the key has never been written.
var ErrMiss = errors.New("cache miss")

type KV struct {
	db *sql.DB
}

// Open opens (and if needed creates) the cache database at path.
func Open(path string) (*KV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, err
	}
	return &KV{db}, nil
}

func (k *KV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := k.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (k *KV) Put(ctx context.Context, key, value string) error {
	_, err := k.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

func (k *KV) Close() error {
	return k.db.Close()
}
