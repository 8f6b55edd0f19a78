// Package importer copies tasks from a remote service.Source onto the board.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"taskboard/internal/service"
	"taskboard/internal/task"
	"taskboard/internal/taskstore"
)

// IDPrefix marks board tasks that came from Google Tasks.
const IDPrefix = "gtasks:"

// ErrNoDefaultList is returned when the source has no default list.
var ErrNoDefaultList = errors.New("no default list")

// Result summarises an import.
type Result struct {
	List    string
	Added   int
	Skipped int
}

// Convert maps a remote task to a board task.
// Open tasks land in Pending, completed ones in Completed.
func Convert(t service.Task) task.Task {
	st := task.Pending
	if t.Status == service.StatusCompleted {
		st = task.Completed
	}
	return task.Task{
		ID:          task.ID(IDPrefix + t.ID),
		Title:       strings.TrimSpace(t.Title),
		Description: t.Notes,
		Stage:       st,
	}
}

// Importer pulls one remote list into a store.
type Importer struct {
	src    service.Source
	store  *taskstore.Store
	logger *slog.Logger
}

// New creates an Importer.
func New(src service.Source, store *taskstore.Store, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{src: src, store: store, logger: logger}
}

// Run imports listName, or the default list when listName is empty.
// Tasks already on the board and untitled tasks are skipped. New tasks are
// appended after the existing collection in a single write. A persistence
// failure is returned as *taskstore.PersistError with the tasks kept in memory.
func (im *Importer) Run(ctx context.Context, listName string) (Result, error) {
	list, err := im.resolve(ctx, listName)
	if err != nil {
		return Result{}, err
	}

	remote, err := im.src.ListTasks(ctx, list.ID)
	if err != nil {
		return Result{}, fmt.Errorf("list tasks: %w", err)
	}

	res := Result{List: list.Title}
	tasks := im.store.Tasks()
	seen := make(map[task.ID]bool, len(tasks)+len(remote))
	for _, t := range tasks {
		seen[t.ID] = true
	}

	for _, r := range remote {
		t := Convert(r)
		if seen[t.ID] || t.Validate() != nil {
			im.logger.Debug("skipping remote task", "id", r.ID, "title", r.Title)
			res.Skipped++
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
		res.Added++
	}

	if res.Added == 0 {
		return res, nil
	}
	return res, im.store.ReplaceAll(ctx, tasks)
}

func (im *Importer) resolve(ctx context.Context, name string) (service.TaskList, error) {
	if name != "" {
		return im.src.ResolveList(ctx, name)
	}
	lists, err := im.src.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}
	for _, l := range lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, ErrNoDefaultList
}
