package stage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"taskboard/internal/task"
	"taskboard/internal/taskstore"
)

// ErrSessionClosed is returned when saving through a session that was
// already saved or closed.
var ErrSessionClosed = errors.New("edit session closed")

// ErrIDMismatch is returned when a save tries to change the task's ID.
var ErrIDMismatch = errors.New("edited task has a different id")

// EditSession is the contract handed to an edit form: it starts from a copy
// of one task and ends with exactly one Save or Close.
type EditSession struct {
	mu     sync.Mutex
	store  *taskstore.Store
	task   task.Task
	closed bool
}

// Task returns the task as it was when the session opened.
func (s *EditSession) Task() task.Task {
	return s.task
}

// Save commits a complete updated task and closes the session.
// updated is false if the task was deleted while the form was open.
// The edited stage must be a column, or the marker the task already had.
// A *taskstore.PersistError still closes the session; the edit is applied in
// memory.
func (s *EditSession) Save(ctx context.Context, edited task.Task) (updated bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrSessionClosed
	}
	if edited.ID != s.task.ID {
		return false, ErrIDMismatch
	}
	if err := edited.Validate(); err != nil {
		return false, err
	}
	if !edited.Stage.Known() && edited.Stage != s.task.Stage {
		return false, fmt.Errorf("%w: %q", ErrUnknownStage, edited.Stage)
	}

	s.closed = true
	return s.store.UpdateTask(ctx, edited)
}

// Close discards the edit without touching the board.
func (s *EditSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
