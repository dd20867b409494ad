// Package cache provides a persistent key/value store with per-entry expiry.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS kv_entries_created_at_idx ON kv_entries (created_at);
`

// Store is a SQLite-backed key/value store. Entries older than the TTL are treated
// as missing and removed on read.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens or creates the database at path. Use ":memory:" for a process-local store.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("cache: failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("cache: failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: failed to apply schema: %w", err)
	}

	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key. Expired entries are deleted and reported as missing.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value     string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, created_at FROM kv_entries WHERE key = ?`, key,
	).Scan(&value, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: failed to read %q: %w", key, err)
	}

	if s.ttl > 0 && s.now().Sub(time.Unix(0, createdAt)) >= s.ttl {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
			return "", false, fmt.Errorf("cache: failed to evict %q: %w", key, err)
		}
		return "", false, nil
	}
	return value, true, nil
}

// Set stores value under key, overwriting any previous entry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, created_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, created_at = excluded.created_at`,
		key, value, s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("cache: failed to write %q: %w", key, err)
	}
	return nil
}

// DeleteSuffix removes every entry whose key ends with suffix.
func (s *Store) DeleteSuffix(ctx context.Context, suffix string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM kv_entries WHERE key LIKE ? ESCAPE '\'`, "%"+escapeLike(suffix))
	if err != nil {
		return 0, fmt.Errorf("cache: failed to delete suffix %q: %w", suffix, err)
	}
	return res.RowsAffected()
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries`); err != nil {
		return fmt.Errorf("cache: failed to clear: %w", err)
	}
	return nil
}

// PurgeExpired removes entries older than the TTL and returns how many were dropped.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).UnixNano()
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE created_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cache: failed to purge: %w", err)
	}
	return res.RowsAffected()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
