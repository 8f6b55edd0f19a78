package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/importer"
	"taskboard/internal/taskstore"
)

func init() {
	Register(&ImportCmd{})
}

// ImportCmd copies tasks from Google Tasks onto the board.
type ImportCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *ImportCmd) SetListName(name string) {
	c.listName = name
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Import tasks from Google Tasks" }
func (c *ImportCmd) Usage() string     { return "taskboard import [--list <list-name>]" }
func (c *ImportCmd) NeedsBoard() bool  { return true }
func (c *ImportCmd) NeedsAuth() bool   { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	im := importer.New(deps.Source, deps.Engine.Store(), deps.Logger)
	res, err := im.Run(ctx, c.listName)

	var perr *taskstore.PersistError
	switch {
	case err == nil:
	case errors.As(err, &perr):
		fmt.Fprintf(errOut, "warning: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d tasks from %s (%d skipped)\n", res.Added, res.List, res.Skipped)
	}
	if perr != nil {
		return exitcode.PersistWarning
	}
	return exitcode.Success
}
