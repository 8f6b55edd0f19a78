package commands

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/stage"
	"taskboard/internal/task"
)

func init() {
	Register(&DragCmd{})
	Register(&DropCmd{})
}

// DragCmd starts a transfer and prints its payload.
type DragCmd struct{}

func (c *DragCmd) Name() string      { return "drag" }
func (c *DragCmd) Aliases() []string { return nil }
func (c *DragCmd) Synopsis() string  { return "Pick up a task and print its transfer payload" }
func (c *DragCmd) Usage() string     { return "taskboard drag <ref>" }
func (c *DragCmd) NeedsBoard() bool  { return true }
func (c *DragCmd) NeedsAuth() bool   { return false }

func (c *DragCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DragCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	t, err := resolveRef(deps.Engine, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	p, err := stage.BeginTransfer(t)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintln(out, string(p))
	return exitcode.Success
}

// DropCmd completes a transfer started by drag.
type DropCmd struct {
	stdin io.Reader
}

// SetStdin replaces the reader used for "-" payloads (for testing).
func (c *DropCmd) SetStdin(r io.Reader) {
	c.stdin = r
}

func (c *DropCmd) Name() string      { return "drop" }
func (c *DropCmd) Aliases() []string { return nil }
func (c *DropCmd) Synopsis() string  { return "Drop a transfer payload onto a column" }
func (c *DropCmd) Usage() string     { return "taskboard drop <stage> <payload|->" }
func (c *DropCmd) NeedsBoard() bool  { return true }
func (c *DropCmd) NeedsAuth() bool   { return false }

func (c *DropCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DropCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: stage and payload required")
		return exitcode.UserError
	}

	target, err := task.ParseStage(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	payload := []byte(args[1])
	if args[1] == "-" {
		in := c.stdin
		if in == nil {
			in = os.Stdin
		}
		payload, err = io.ReadAll(in)
		if err != nil {
			fmt.Fprintf(errOut, "error: read payload: %v\n", err)
			return exitcode.UserError
		}
		payload = bytes.TrimSpace(payload)
	}

	outcome, err := deps.Engine.Drop(ctx, stage.Payload(payload), target)
	return reportOutcome(cfg, outcome, err, out, errOut)
}
