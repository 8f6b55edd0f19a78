// Package service defines the backend-agnostic interface for reading tasks
// from a remote task service the board can import from.
package service

import "context"

// Source defines the remote operations the importer needs.
// Google Tasks API calls go through this interface; commands never import
// the Google SDK directly.
type Source interface {
	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task in a list, open and completed, in API order.
	ListTasks(ctx context.Context, listID string) ([]Task, error)
}
