package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	desc     string
	priority string
	stage    string
}

// SetStage sets the initial stage (for testing).
func (c *AddCmd) SetStage(s string) {
	c.stage = s
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add [--desc <text>] [--priority <p>] [--stage <stage>] <title...>"
}
func (c *AddCmd) NeedsBoard() bool { return true }
func (c *AddCmd) NeedsAuth() bool  { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.desc, "d", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.stage, "stage", "", "")
	fs.StringVar(&c.stage, "s", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	// Join args to form title
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	st := task.Pending
	if c.stage != "" {
		parsed, err := task.ParseStage(c.stage)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		st = parsed
	}

	t := task.Task{
		ID:          task.NewID(),
		Title:       title,
		Description: c.desc,
		Priority:    c.priority,
		Stage:       st,
	}
	return finish(cfg, deps.Engine.Store().Add(ctx, t), out, errOut)
}
