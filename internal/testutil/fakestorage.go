// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrStorageUnavailable is a ready-made error for storage failure injection.
var ErrStorageUnavailable = errors.New("storage unavailable")

// FakeStorage is an in-memory implementation of kv.Storage for testing.
type FakeStorage struct {
	mu      sync.RWMutex
	entries map[string]string
	sets    int

	// Error injection for testing
	GetErr error
	SetErr error
}

// NewFakeStorage creates an empty FakeStorage.
func NewFakeStorage() *FakeStorage {
	return &FakeStorage{entries: make(map[string]string)}
}

// Put stores a value directly, bypassing error injection and the write counter.
func (f *FakeStorage) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
}

// Value returns the raw stored value for key.
func (f *FakeStorage) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.entries[key]
	return v, ok
}

// Sets returns the number of successful Set calls.
func (f *FakeStorage) Sets() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sets
}

// Get implements kv.Storage.
func (f *FakeStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.entries[key]
	return v, ok, nil
}

// Set implements kv.Storage.
func (f *FakeStorage) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	f.sets++
	return nil
}

// Close implements kv.Storage.
func (f *FakeStorage) Close() error { return nil }
