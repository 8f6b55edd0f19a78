package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/kv"
	"taskboard/internal/service"
	"taskboard/internal/stage"
	"taskboard/internal/taskstore"
)

// StorageFactory opens the storage the board is kept in.
type StorageFactory func(ctx context.Context, cfg *config.Config) (kv.Storage, error)

// SourceFactory creates the remote task source for import.
type SourceFactory func(ctx context.Context, cfg *config.Config) (service.Source, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	storage  StorageFactory
	source   SourceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and factories.
func NewDispatcher(registry *commands.Registry, storage StorageFactory, source SourceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		storage:  storage,
		source:   source,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> show the board
	if len(args) == 0 {
		return d.dispatch(ctx, "show", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag).
	// A lone "-" is a valid argument (stdin).
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	deps := &commands.Deps{Logger: newLogger(errOut, debug)}

	if cmd.NeedsAuth() {
		src, code := d.openSource(ctx, cfg, errOut)
		if code != exitcode.Success {
			return code
		}
		deps.Source = src
	}

	if cmd.NeedsBoard() {
		storage, code := d.openStorage(ctx, cfg, errOut)
		if code != exitcode.Success {
			return code
		}
		defer storage.Close()

		eng, code := loadBoard(ctx, cfg, storage, deps.Logger, errOut)
		if code != exitcode.Success {
			return code
		}
		deps.Engine = eng
	}

	return cmd.Run(ctx, cfg, deps, positionalArgs, out, errOut)
}

// flagError rewrites flag package errors into the CLI's message style.
func flagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		return "flag needs an argument: " + strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
	}
	return errStr
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (d *Dispatcher) openSource(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Source, int) {
	if d.source == nil {
		fmt.Fprintln(errOut, "error: no task source configured")
		return nil, exitcode.BackendError
	}
	src, err := d.source(ctx, cfg)
	if err == nil {
		return src, exitcode.Success
	}
	if errors.Is(err, ErrNoOAuthClient) || errors.Is(err, ErrNotLoggedIn) {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return nil, exitcode.AuthError
	}
	if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "auth") {
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return nil, exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %s\n", err)
	return nil, exitcode.BackendError
}

func (d *Dispatcher) openStorage(ctx context.Context, cfg *config.Config, errOut io.Writer) (kv.Storage, int) {
	factory := d.storage
	if factory == nil {
		factory = DefaultStorage
	}
	storage, err := factory(ctx, cfg)
	if errors.Is(err, kv.ErrUnknownDriver) {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return nil, exitcode.UserError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %s\n", err)
		return nil, exitcode.BackendError
	}
	return storage, exitcode.Success
}

// loadBoard seeds a store from storage.
// An unreadable backend starts an empty board with a warning; a board that
// was read but does not decode is an error so it is never overwritten.
func loadBoard(ctx context.Context, cfg *config.Config, storage kv.Storage, logger *slog.Logger, errOut io.Writer) (*stage.Engine, int) {
	opts := []taskstore.Option{taskstore.WithLogger(logger)}
	if cfg.Storage.Key != "" {
		opts = append(opts, taskstore.WithKey(cfg.Storage.Key))
	}
	store := taskstore.New(storage, opts...)

	err := store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, taskstore.ErrCorrupt):
		fmt.Fprintf(errOut, "error: %s\n", err)
		return nil, exitcode.BackendError
	case taskstore.IsPersistError(err):
		fmt.Fprintf(errOut, "warning: %s\n", err)
	default:
		fmt.Fprintf(errOut, "error: %s\n", err)
		return nil, exitcode.BackendError
	}

	return stage.New(store, logger), exitcode.Success
}
