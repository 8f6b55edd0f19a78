package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) NeedsBoard() bool  { return false }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskboard                                   Show the board
  taskboard show [common flags] [--long]      Show the board (aliases: list, ls)
  taskboard add [common flags] [--desc <d>] [--priority <p>] [--stage <s>] <title...>
  taskboard move [common flags] <ref> <stage>
  taskboard drag [common flags] <ref>
  taskboard drop [common flags] <stage> <payload|->
  taskboard edit [common flags] [--title <t>] [--desc <d>] [--priority <p>] [--stage <s>] <ref>
  taskboard rm [common flags] <ref>
  taskboard export [common flags] [--format json|csv|pdf] [--output <file>]
  taskboard import [common flags] [--list <list-name>]
  taskboard serve [common flags] [--addr <host:port>]
  taskboard login [common flags]
  taskboard logout [common flags]
  taskboard help
  taskboard version

Task references:
  p1, i2, c3       Position in the Pending, InProgress or Completed column
  u1               Position among tasks with an unknown stage
  <id>             A task ID

Stages:
  pending (red), in-progress (orange), completed (green)

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
