package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"taskboard/internal/stage"
	"taskboard/internal/task"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Letter rune    // column letter, 0 for a literal ID
	Pos    int     // 1-based position in the column
	ID     task.ID // literal task ID when Letter is 0
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference.
//
// Parsing rules:
// 1. <letter><digits> with letter p, i, c or u → column position (p1, c12)
// 2. Anything else non-empty → literal task ID
//
// Column letters are p (Pending), i (InProgress), c (Completed) and
// u (Unclassified).
func ParseTaskRef(arg string) (TaskRef, error) {
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	letter := rune(arg[0])
	if isColumnLetter(letter) && len(arg) > 1 && isAllDigits(arg[1:]) {
		num, err := strconv.Atoi(arg[1:])
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Letter: letter, Pos: num}, nil
	}

	return TaskRef{ID: task.ID(arg)}, nil
}

// String returns the reference as typed.
func (r TaskRef) String() string {
	if r.Letter == 0 {
		return string(r.ID)
	}
	return fmt.Sprintf("%c%d", r.Letter, r.Pos)
}

// Resolve finds the referenced task in the current views.
func (r TaskRef) Resolve(v stage.Views) (task.Task, error) {
	if r.Letter != 0 {
		t, ok := v.At(r.Letter, r.Pos)
		if !ok {
			return task.Task{}, fmt.Errorf("task not found: %s", r)
		}
		return t, nil
	}
	for _, col := range [][]task.Task{v.Pending, v.InProgress, v.Completed, v.Unclassified} {
		for _, t := range col {
			if t.ID == r.ID {
				return t, nil
			}
		}
	}
	return task.Task{}, fmt.Errorf("task not found: %s", r)
}

// resolveRef parses and resolves args[0] against the engine's views.
func resolveRef(eng *stage.Engine, args []string) (task.Task, error) {
	if len(args) == 0 {
		return task.Task{}, ErrTaskRefRequired
	}
	ref, err := ParseTaskRef(args[0])
	if err != nil {
		return task.Task{}, err
	}
	return ref.Resolve(eng.Views())
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isColumnLetter(r rune) bool {
	switch r {
	case 'p', 'i', 'c', 'u':
		return true
	}
	return false
}
