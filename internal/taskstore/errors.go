package taskstore

import (
	"errors"
	"fmt"
)

// PersistError reports a storage failure after an in-memory mutation
// succeeded. It is a warning: the collection in memory is still valid.
type PersistError struct {
	Op  string // "load", "add", "replace", "update", "delete"
	Err error
}

func (e *PersistError) Error() string {
	if e.Op == "load" {
		return fmt.Sprintf("board not loaded: %v", e.Err)
	}
	return fmt.Sprintf("board not saved (%s): %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsPersistError reports whether err is or wraps a *PersistError.
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}
