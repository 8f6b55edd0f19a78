// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, bad stage).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a storage or remote API error.
	BackendError = 3

	// PersistWarning indicates the board changed in memory but the write to
	// storage failed, so the change did not outlive the process.
	PersistWarning = 4
)
