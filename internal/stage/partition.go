// Package stage derives the board's columns from the task collection and
// moves tasks between them.
//
// Columns are never cached: every read partitions the current collection, so
// a view can never disagree with the store it was derived from.
package stage

import "taskboard/internal/task"

// Views is the board split by stage marker.
// Pending, InProgress and Completed are disjoint and keep collection order.
// Unclassified holds tasks whose marker is not a known stage; they are kept
// out of every column but remain in the collection.
type Views struct {
	Pending      []task.Task
	InProgress   []task.Task
	Completed    []task.Task
	Unclassified []task.Task
}

// Partition splits tasks into columns. It is a stable filter with no side
// effects.
func Partition(tasks []task.Task) Views {
	v := Views{
		Pending:    []task.Task{},
		InProgress: []task.Task{},
		Completed:  []task.Task{},
	}
	for _, t := range tasks {
		switch t.Stage {
		case task.Pending:
			v.Pending = append(v.Pending, t)
		case task.InProgress:
			v.InProgress = append(v.InProgress, t)
		case task.Completed:
			v.Completed = append(v.Completed, t)
		default:
			v.Unclassified = append(v.Unclassified, t)
		}
	}
	return v
}

// Column returns the view for s. Unknown markers return Unclassified.
func (v Views) Column(s task.Stage) []task.Task {
	switch s {
	case task.Pending:
		return v.Pending
	case task.InProgress:
		return v.InProgress
	case task.Completed:
		return v.Completed
	}
	return v.Unclassified
}

// Len returns the number of tasks across all views, quarantined ones included.
func (v Views) Len() int {
	return len(v.Pending) + len(v.InProgress) + len(v.Completed) + len(v.Unclassified)
}

// At resolves a column letter and 1-based position to a task.
// Letters are 'p', 'i', 'c' and 'u' for quarantined tasks.
func (v Views) At(letter rune, pos int) (task.Task, bool) {
	var col []task.Task
	switch letter {
	case 'p':
		col = v.Pending
	case 'i':
		col = v.InProgress
	case 'c':
		col = v.Completed
	case 'u':
		col = v.Unclassified
	default:
		return task.Task{}, false
	}
	if pos < 1 || pos > len(col) {
		return task.Task{}, false
	}
	return col[pos-1], true
}
