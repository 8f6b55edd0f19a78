package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/stage"
	"taskboard/internal/task"
)

func init() {
	Register(&MoveCmd{})
}

// MoveCmd moves a task to another column in one step.
type MoveCmd struct{}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Move a task to a column" }
func (c *MoveCmd) Usage() string     { return "taskboard move <ref> <stage>" }
func (c *MoveCmd) NeedsBoard() bool  { return true }
func (c *MoveCmd) NeedsAuth() bool   { return false }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task reference and stage required")
		return exitcode.UserError
	}

	target, err := task.ParseStage(args[1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	t, err := resolveRef(deps.Engine, args[:1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	outcome, err := deps.Engine.Move(ctx, t, target)
	return reportOutcome(cfg, outcome, err, out, errOut)
}

// reportOutcome prints the result of a transfer.
func reportOutcome(cfg *config.Config, outcome stage.Outcome, err error, out, errOut io.Writer) int {
	if err != nil && !warnPersist(err, errOut) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		if outcome == stage.OutcomeMoved {
			fmt.Fprintln(out, "ok")
		} else {
			fmt.Fprintln(out, outcome)
		}
	}
	if err != nil {
		return exitcode.PersistWarning
	}
	return exitcode.Success
}
