// Package taskstore holds the board's authoritative task collection.
//
// Every mutation is applied in memory first and then written in full to the
// backing kv.Storage under a single key. A failed write leaves the in-memory
// collection intact and is reported as a *PersistError. After a failed Load
// nothing is written until a later Load succeeds, so stored data that could
// not be read is never replaced.
package taskstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"taskboard/internal/kv"
	"taskboard/internal/task"
)

// DefaultKey is the storage key the collection is written under.
const DefaultKey = "elements"

// ErrDuplicateID is returned by Add when the ID is already on the board.
var ErrDuplicateID = errors.New("duplicate task id")

// ErrCorrupt is returned by Load when stored data cannot be decoded.
var ErrCorrupt = errors.New("stored board is unreadable")

// Store owns the ordered task collection.
type Store struct {
	mu      sync.RWMutex
	tasks   []task.Task
	storage kv.Storage
	key     string
	logger  *slog.Logger
	loadErr error
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for data-integrity and persistence messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty Store persisting into storage.
func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logger:  slog.Default(),
		tasks:   []task.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load seeds the collection from storage.
// A missing key leaves the board empty. A read failure leaves the board
// empty and is returned as a *PersistError; undecodable data returns ErrCorrupt.
// Either failure makes the board read-only until Load succeeds.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.setLoadErr(err)
		return &PersistError{Op: "load", Err: err}
	}

	var tasks []task.Task
	if ok {
		tasks, err = task.Unmarshal([]byte(raw))
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrCorrupt, err)
			s.setLoadErr(err)
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = nil
	if !ok {
		s.logger.Debug("no stored board", "key", s.key)
		return nil
	}
	s.tasks = s.dedupe(tasks)
	s.logger.Debug("board loaded", "key", s.key, "tasks", len(s.tasks))
	return nil
}

// Tasks returns a copy of the collection in board order.
func (s *Store) Tasks() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Get returns the task with the given ID.
func (s *Store) Get(id task.ID) (task.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// ReplaceAll makes tasks the new collection.
// Duplicate IDs are dropped, keeping the first occurrence.
func (s *Store) ReplaceAll(ctx context.Context, tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = s.dedupe(tasks)
	return s.persist(ctx, "replace")
}

// Add appends a new task.
func (s *Store) Add(ctx context.Context, t task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(t.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}

	next := make([]task.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	s.tasks = append(next, t)
	return s.persist(ctx, "add")
}

// DeleteTask removes the task with the given ID.
// removed is false if no task matched; that is not an error.
func (s *Store) DeleteTask(ctx context.Context, id task.ID) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("delete of unknown task ignored", "id", id)
		return false, nil
	}

	next := make([]task.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	s.tasks = next
	return true, s.persist(ctx, "delete")
}

// UpdateTask replaces the task sharing t.ID, keeping its position.
// updated is false if no task matched; that is not an error.
func (s *Store) UpdateTask(ctx context.Context, t task.Task) (updated bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(t.ID)
	if i < 0 {
		s.logger.Debug("update of unknown task ignored", "id", t.ID)
		return false, nil
	}

	next := make([]task.Task, len(s.tasks))
	copy(next, s.tasks)
	next[i] = t
	s.tasks = next
	return true, s.persist(ctx, "update")
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id task.ID) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) dedupe(tasks []task.Task) []task.Task {
	seen := make(map[task.ID]bool, len(tasks))
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			s.logger.Warn("duplicate task id dropped", "id", t.ID)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

func (s *Store) setLoadErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// persist writes the whole collection. Must be called with mu held.
func (s *Store) persist(ctx context.Context, op string) error {
	if s.loadErr != nil {
		s.logger.Warn("board not saved, stored copy was never loaded", "op", op, "key", s.key)
		return &PersistError{Op: "load", Err: s.loadErr}
	}
	data, err := task.Marshal(s.tasks)
	if err != nil {
		return &PersistError{Op: op, Err: err}
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Warn("board not saved", "op", op, "key", s.key, "error", err)
		return &PersistError{Op: op, Err: err}
	}
	s.logger.Debug("board saved", "op", op, "tasks", len(s.tasks))
	return nil
}
