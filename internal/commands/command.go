// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"

	"taskboard/internal/config"
	"taskboard/internal/service"
	"taskboard/internal/stage"
)

// Deps carries what the dispatcher built for a command.
type Deps struct {
	// Engine is nil unless NeedsBoard returns true.
	Engine *stage.Engine

	// Source is nil unless NeedsAuth returns true.
	Source service.Source

	// Logger is never nil.
	Logger *slog.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBoard returns true if the command reads or changes the board.
	NeedsBoard() bool

	// NeedsAuth returns true if the command requires Google authentication.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int
}
