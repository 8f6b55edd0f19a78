// Package task defines the board's task record and its stage markers.
package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Stage is the workflow marker stored on every task.
// Markers are stored as the column colour, which is the format the board
// has always persisted.
type Stage string

// Known stage markers.
const (
	Pending    Stage = "red"
	InProgress Stage = "orange"
	Completed  Stage = "green"
)

// Stages lists the known markers in column order.
var Stages = []Stage{Pending, InProgress, Completed}

// ErrTitleRequired indicates a task without a title.
var ErrTitleRequired = errors.New("title required")

// ErrIDRequired indicates a task without an ID.
var ErrIDRequired = errors.New("id required")

// Known reports whether s is one of the three board stages.
func (s Stage) Known() bool {
	switch s {
	case Pending, InProgress, Completed:
		return true
	}
	return false
}

// Label returns the column title for s.
// Unknown markers are returned verbatim.
func (s Stage) Label() string {
	switch s {
	case Pending:
		return "Pending"
	case InProgress:
		return "InProgress"
	case Completed:
		return "Completed"
	}
	return string(s)
}

// Letter returns the column letter used in task references.
func (s Stage) Letter() rune {
	switch s {
	case Pending:
		return 'p'
	case InProgress:
		return 'i'
	case Completed:
		return 'c'
	}
	return 'u'
}

var stageNames = map[string]Stage{
	"pending":     Pending,
	"todo":        Pending,
	"red":         Pending,
	"inprogress":  InProgress,
	"in-progress": InProgress,
	"in_progress": InProgress,
	"doing":       InProgress,
	"orange":      InProgress,
	"completed":   Completed,
	"done":        Completed,
	"green":       Completed,
}

// ParseStage resolves a column name, alias or colour to a known stage.
// Matching is case-insensitive.
func ParseStage(s string) (Stage, error) {
	key := cases.Fold().String(strings.TrimSpace(s))
	if st, ok := stageNames[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown stage: %s", s)
}

// ID is an opaque task identifier.
// Stored data may carry numeric IDs; they decode to their decimal text.
type ID string

// NewID returns a fresh time-ordered identifier.
func NewID() ID {
	return ID(uuid.Must(uuid.NewV7()).String())
}

// UnmarshalJSON accepts both JSON strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id: %s", data)
	}
	*id = ID(n.String())
	return nil
}

// Task is a single card on the board.
type Task struct {
	ID          ID     `json:"id"`
	Title       string `json:"task"`
	Description string `json:"desc"`
	Priority    string `json:"priority"`
	Stage       Stage  `json:"color"`
}

// Validate checks field presence. Content is not interpreted.
func (t Task) Validate() error {
	if strings.TrimSpace(string(t.ID)) == "" {
		return ErrIDRequired
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// WithStage returns a copy of t moved to s.
func (t Task) WithStage(s Stage) Task {
	t.Stage = s
	return t
}
