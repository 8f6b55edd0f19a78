package commands

import (
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/taskstore"
)

// finish reports the result of a board mutation.
// A persistence failure leaves the change in place for this run only, so it
// is a warning with its own exit code rather than an error.
func finish(cfg *config.Config, err error, out, errOut io.Writer) int {
	if err == nil {
		if !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
		return exitcode.Success
	}
	if taskstore.IsPersistError(err) {
		fmt.Fprintf(errOut, "warning: %v\n", err)
		return exitcode.PersistWarning
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// warnPersist prints a warning when err is a persistence failure and reports
// whether it did.
func warnPersist(err error, errOut io.Writer) bool {
	if taskstore.IsPersistError(err) {
		fmt.Fprintf(errOut, "warning: %v\n", err)
		return true
	}
	return false
}
