package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskboard/internal/task"
	"taskboard/internal/taskstore"
)

// ErrMalformedPayload is returned when a drop carries data that does not
// decode to a task. Nothing is mutated.
var ErrMalformedPayload = errors.New("malformed transfer payload")

// ErrUnknownStage is returned when a drop targets a marker that is not a column.
var ErrUnknownStage = errors.New("unknown stage")

// ErrTaskNotFound is returned by gestures that need an existing task to start.
var ErrTaskNotFound = errors.New("task not found")

// Outcome describes what a completed transfer did.
type Outcome int

const (
	// OutcomeMoved means the task's stage was changed.
	OutcomeMoved Outcome = iota
	// OutcomeUnchanged means the task was already in the target column.
	OutcomeUnchanged
	// OutcomeStale means the dragged task is no longer on the board.
	OutcomeStale
	// OutcomeIgnored means the drop was rejected before reaching the board.
	OutcomeIgnored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeStale:
		return "stale"
	case OutcomeIgnored:
		return "ignored"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Payload is the snapshot carried from drag start to drop.
// It holds the full task record, not just its ID.
type Payload []byte

// BeginTransfer packages t for a pending drag. It does not touch the store.
func BeginTransfer(t task.Task) (Payload, error) {
	data, err := task.MarshalOne(t)
	if err != nil {
		return nil, err
	}
	return Payload(data), nil
}

// Accepts reports whether a column with marker target takes drops.
// Every column accepts tasks from every column, itself included.
func Accepts(target task.Stage) bool {
	return target.Known()
}

// Engine executes stage transitions and hands the presentation layer its
// views and gesture handlers. The store is the only place tasks are written.
type Engine struct {
	store  *taskstore.Store
	logger *slog.Logger
}

// New creates an Engine over store.
func New(store *taskstore.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, logger: logger}
}

// Store returns the underlying task store.
func (e *Engine) Store() *taskstore.Store {
	return e.store
}

// Views partitions the current collection.
// Tasks with unknown markers are logged each time they are seen.
func (e *Engine) Views() Views {
	v := Partition(e.store.Tasks())
	for _, t := range v.Unclassified {
		e.logger.Warn("task has unknown stage marker", "id", t.ID, "stage", string(t.Stage))
	}
	return v
}

// CompleteTransfer finishes a drag by moving the dragged task to target.
//
// The payload must decode to a task with an ID, otherwise ErrMalformedPayload
// is returned. A task no longer on the board yields OutcomeStale. The task
// written back is the board's current copy with only its stage changed, so
// edits made while the drag was in flight are kept.
func (e *Engine) CompleteTransfer(ctx context.Context, p Payload, target task.Stage) (Outcome, error) {
	if !Accepts(target) {
		return OutcomeIgnored, fmt.Errorf("%w: %s", ErrUnknownStage, target)
	}

	dragged, err := task.UnmarshalOne(p)
	if err != nil {
		e.logger.Debug("drop ignored", "reason", err)
		return OutcomeIgnored, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if dragged.ID == "" {
		return OutcomeIgnored, fmt.Errorf("%w: missing id", ErrMalformedPayload)
	}

	current, ok := e.store.Get(dragged.ID)
	if !ok {
		e.logger.Debug("drop of stale task ignored", "id", dragged.ID)
		return OutcomeStale, nil
	}
	if current.Stage == target {
		return OutcomeUnchanged, nil
	}

	updated, err := e.store.UpdateTask(ctx, current.WithStage(target))
	if !updated {
		// Deleted between Get and UpdateTask.
		return OutcomeStale, err
	}
	e.logger.Debug("task moved", "id", current.ID, "from", string(current.Stage), "to", string(target))
	return OutcomeMoved, err
}

// DragStart begins a transfer for the task with the given ID.
func (e *Engine) DragStart(id task.ID) (Payload, error) {
	t, ok := e.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return BeginTransfer(t)
}

// Drop is the drop handler for the column with marker target.
func (e *Engine) Drop(ctx context.Context, p Payload, target task.Stage) (Outcome, error) {
	return e.CompleteTransfer(ctx, p, target)
}

// Move runs both halves of a drag for a task already resolved by the caller.
func (e *Engine) Move(ctx context.Context, t task.Task, target task.Stage) (Outcome, error) {
	p, err := BeginTransfer(t)
	if err != nil {
		return OutcomeIgnored, err
	}
	return e.CompleteTransfer(ctx, p, target)
}

// DeleteClick removes a task. A task already gone is not an error.
func (e *Engine) DeleteClick(ctx context.Context, id task.ID) (bool, error) {
	return e.store.DeleteTask(ctx, id)
}

// EditClick opens an edit session for the task with the given ID.
func (e *Engine) EditClick(id task.ID) (*EditSession, error) {
	t, ok := e.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return &EditSession{store: e.store, task: t}, nil
}
