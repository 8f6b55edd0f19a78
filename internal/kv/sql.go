package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// dialect holds the statements that differ between SQL backends.
type dialect struct {
	driverName string
	schema     string
	get        string
	upsert     string
	pragmas    []string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		driverName: "sqlite3",
		schema: `CREATE TABLE IF NOT EXISTS kv_store (
    item_key   TEXT PRIMARY KEY,
    item_value TEXT NOT NULL
)`,
		get:    `SELECT item_value FROM kv_store WHERE item_key = ?`,
		upsert: `INSERT INTO kv_store (item_key, item_value) VALUES (?, ?) ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value`,
		pragmas: []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
			"PRAGMA busy_timeout = 5000",
		},
	},
	DriverMySQL: {
		driverName: "mysql",
		schema: `CREATE TABLE IF NOT EXISTS kv_store (
    item_key   VARCHAR(191) PRIMARY KEY,
    item_value LONGTEXT NOT NULL
)`,
		get:    `SELECT item_value FROM kv_store WHERE item_key = ?`,
		upsert: `INSERT INTO kv_store (item_key, item_value) VALUES (?, ?) ON DUPLICATE KEY UPDATE item_value = VALUES(item_value)`,
	},
	DriverPostgres: {
		driverName: "pgx",
		schema: `CREATE TABLE IF NOT EXISTS kv_store (
    item_key   TEXT PRIMARY KEY,
    item_value TEXT NOT NULL
)`,
		get:    `SELECT item_value FROM kv_store WHERE item_key = $1`,
		upsert: `INSERT INTO kv_store (item_key, item_value) VALUES ($1, $2) ON CONFLICT (item_key) DO UPDATE SET item_value = EXCLUDED.item_value`,
	},
}

// SQLStorage stores keys in a kv_store table.
type SQLStorage struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQL opens a SQL-backed store and creates its table if needed.
// driver is one of DriverSQLite, DriverMySQL or DriverPostgres.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLStorage, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("%s storage requires a dsn", driver)
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	for _, pragma := range d.pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLStorage{db: db, dialect: d}, nil
}

// Get implements Storage.
func (s *SQLStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Storage.
func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Close implements Storage.
func (s *SQLStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
