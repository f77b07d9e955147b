package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteCache stores entries in a single SQLite database file.
type SQLiteCache struct {
	db   *sql.DB
	path string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
);`

// NewSQLiteCache opens or creates the database at path.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx := context.Background()
	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		sqliteSchema,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init cache database: %w", err)
		}
	}

	return &SQLiteCache{db: db, path: path}, nil
}

// Get retrieves a value; expired rows are deleted and reported as misses.
func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data      []byte
		expiresAt int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT data, expires_at FROM entries WHERE key = ?`, key,
	).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if expiresAt > 0 && time.Now().UnixNano() > expiresAt {
		_ = c.Delete(ctx, key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set inserts or replaces a value.
func (c *SQLiteCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiresAt int64
	if exp := expiry(ttl); !exp.IsZero() {
		expiresAt = exp.UnixNano()
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO entries (key, data, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		key, data, expiresAt,
	)
	return err
}

func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key)
	return err
}

func (c *SQLiteCache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM entries`)
	return err
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *SQLiteCache) Path() string {
	return c.path
}

var _ Cache = (*SQLiteCache)(nil)
