// Package kv provides the durable key-value storage the task board persists into.
//
// Backends:
//   - file: a JSON object on disk, one entry per key (default)
//   - sqlite: a single table in a local SQLite database
//   - mysql, postgres: the same table on a database server
package kv

import (
	"context"
	"errors"
	"fmt"
)

// Storage is a key-value text store.
type Storage interface {
	// Get returns the value stored under key.
	// ok is false if the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the backend.
	Close() error
}

// Driver names accepted by Open.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Open opens the backend named by driver.
// dsn is a file path for file and sqlite, a connection string otherwise.
func Open(ctx context.Context, driver, dsn string) (Storage, error) {
	switch driver {
	case "", DriverFile:
		return NewFileStorage(dsn), nil
	case DriverSQLite, DriverMySQL, DriverPostgres:
		return OpenSQL(ctx, driver, dsn)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
