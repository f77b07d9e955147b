package cache

import (
	"path/filepath"

	"github.com/matzehuels/pydocs/pkg/errors"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend  string // sqlite, file, redis or none; empty means sqlite
	Dir      string // directory for sqlite and file backends
	RedisURL string // redis://host:port/db for the redis backend
}

// Open constructs the backend named by opts.Backend.
func Open(opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the sqlite backend")
		}
		c, err := NewSQLiteCache(filepath.Join(opts.Dir, "cache.db"))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open sqlite cache")
		}
		return c, nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
		}
		c, err := NewFileCache(filepath.Join(opts.Dir, "http"))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open file cache")
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(opts.RedisURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", opts.Backend)
	}
}

// Location describes where a backend keeps its data, for display.
func Location(opts Options) string {
	switch opts.Backend {
	case "", BackendSQLite:
		return filepath.Join(opts.Dir, "cache.db")
	case BackendFile:
		return filepath.Join(opts.Dir, "http")
	case BackendRedis:
		return opts.RedisURL
	default:
		return ""
	}
}
