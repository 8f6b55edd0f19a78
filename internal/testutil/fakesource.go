package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"taskboard/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

var (
	// ErrNotFound is returned when a list is not found.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when multiple lists match a name.
	ErrAmbiguous = errors.New("ambiguous")
)

// FakeSource is an in-memory implementation of service.Source for testing.
type FakeSource struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks

	// Error injection for testing
	ListListsErr   error
	ResolveListErr error
	ListTasksErr   map[string]error // listID -> error
}

// NewFakeSource creates a new FakeSource with a default list.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		lists: []service.TaskList{
			{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
		},
		tasks:        map[string][]service.Task{DefaultListID: nil},
		ListTasksErr: make(map[string]error),
	}
}

// AddList adds a list to the fake source.
func (f *FakeSource) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// AddTask adds an open task to a list.
func (f *FakeSource) AddTask(listID, taskID, title, notes string) {
	f.add(listID, service.Task{ID: taskID, Title: title, Notes: notes, Status: service.StatusNeedsAction})
}

// AddCompletedTask adds a completed task to a list.
func (f *FakeSource) AddCompletedTask(listID, taskID, title string) {
	f.add(listID, service.Task{ID: taskID, Title: title, Status: service.StatusCompleted})
}

func (f *FakeSource) add(listID string, t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], t)
}

// ListLists implements service.Source.
func (f *FakeSource) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Source.
func (f *FakeSource) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if fold.String(strings.TrimSpace(l.Title)) == want {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, ErrAmbiguous
	}
}

// ListTasks implements service.Source.
func (f *FakeSource) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if err := f.ListTasksErr[listID]; err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, ErrNotFound
	}
	result := make([]service.Task, len(tasks))
	copy(result, tasks)
	return result, nil
}
