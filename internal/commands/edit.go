package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// optString is a string flag that remembers whether it was given.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

// EditCmd edits a task's fields. With no field flags it prints the task.
type EditCmd struct {
	title    optString
	desc     optString
	priority optString
	stage    optString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Show or edit a task" }
func (c *EditCmd) Usage() string {
	return "taskboard edit [--title <t>] [--desc <d>] [--priority <p>] [--stage <s>] <ref>"
}
func (c *EditCmd) NeedsBoard() bool { return true }
func (c *EditCmd) NeedsAuth() bool  { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.desc, "desc", "")
	fs.Var(&c.desc, "d", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.priority, "p", "")
	fs.Var(&c.stage, "stage", "")
	fs.Var(&c.stage, "s", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	t, err := resolveRef(deps.Engine, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	sess, err := deps.Engine.EditClick(t.ID)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	defer sess.Close()

	edited := sess.Task()
	if !c.title.set && !c.desc.set && !c.priority.set && !c.stage.set {
		output.FormatTaskDetail(out, edited)
		return exitcode.Success
	}

	if c.title.set {
		edited.Title = c.title.value
	}
	if c.desc.set {
		edited.Description = c.desc.value
	}
	if c.priority.set {
		edited.Priority = c.priority.value
	}
	if c.stage.set {
		st, err := task.ParseStage(c.stage.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		edited.Stage = st
	}

	_, err = sess.Save(ctx, edited)
	return finish(cfg, err, out, errOut)
}
