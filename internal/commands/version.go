package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
)

// Version overrides the module version from build info, e.g.
// -ldflags "-X taskboard/internal/commands.Version=1.2.0".
var Version string

func init() {
	Register(&VersionCmd{})
}

// VersionCmd prints the build version and the storage driver the board uses.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version and storage driver" }
func (c *VersionCmd) Usage() string     { return "taskboard version [common flags]" }
func (c *VersionCmd) NeedsBoard() bool  { return false }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "taskboard %s (storage: %s)\n", BuildVersion(), cfg.StorageDriver())
	return exitcode.Success
}

// BuildVersion returns Version, else the main module version, else "devel".
func BuildVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "devel"
}
