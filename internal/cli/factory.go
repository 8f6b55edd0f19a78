// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/backend/googletasks"
	"taskboard/internal/config"
	"taskboard/internal/kv"
	"taskboard/internal/service"
)

var (
	// ErrNoOAuthClient is returned when oauth_client.json is missing.
	ErrNoOAuthClient = errors.New("oauth_client.json not found")

	// ErrNotLoggedIn is returned when no token has been stored yet.
	ErrNotLoggedIn = errors.New("not logged in (run: taskboard login)")
)

// DefaultStorage opens the storage backend named in cfg.
func DefaultStorage(ctx context.Context, cfg *config.Config) (kv.Storage, error) {
	if cfg.StorageDriver() == kv.DriverSQLite && cfg.Storage.DSN == "" {
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("create config directory: %w", err)
		}
	}
	return kv.Open(ctx, cfg.StorageDriver(), cfg.StorageDSN())
}

// GoogleSource creates a Google Tasks source after checking the credential
// files exist.
func GoogleSource(ctx context.Context, cfg *config.Config) (service.Source, error) {
	if !cfg.HasOAuthClient() {
		return nil, fmt.Errorf("%w in %s", ErrNoOAuthClient, cfg.Dir)
	}
	if !cfg.HasToken() {
		return nil, ErrNotLoggedIn
	}
	return googletasks.New(ctx, cfg)
}
