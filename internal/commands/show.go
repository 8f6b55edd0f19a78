package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd prints the board.
type ShowCmd struct {
	long bool
}

// SetLong enables descriptions (for testing).
func (c *ShowCmd) SetLong(long bool) {
	c.long = long
}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"list", "ls"} }
func (c *ShowCmd) Synopsis() string  { return "Show the board" }
func (c *ShowCmd) Usage() string     { return "taskboard show [--long]" }
func (c *ShowCmd) NeedsBoard() bool  { return true }
func (c *ShowCmd) NeedsAuth() bool   { return false }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.long, "long", false, "")
	fs.BoolVar(&c.long, "l", false, "")
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	v := deps.Engine.Views()
	if v.Len() == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatBoard(out, v, output.Options{Long: c.long})
	return exitcode.Success
}
