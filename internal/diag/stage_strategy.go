package diag

import (
	"strings"

	"github.com/fbdiag-dev/fbdiag/internal/lockfile"
	"github.com/fbdiag-dev/fbdiag/internal/strategy"
)

// StrategyStage detects lockfiles, selects the install strategy, applies any
// configured command overrides, and echoes both commands before anything
// runs.
type StrategyStage struct{}

func (s *StrategyStage) Name() string { return "strategy" }

func (s *StrategyStage) Run(ctx *Context) error {
	r := ctx.Report
	r.Section("DETERMINE INSTALL STRATEGY")

	ctx.Locks = lockfile.Detect(ctx.Root)
	r.Printf("Lockfiles: %s=%t %s=%t %s=%t",
		lockfile.PNPMLock, ctx.Locks.PNPM,
		lockfile.NPMLock, ctx.Locks.NPM,
		lockfile.YarnLock, ctx.Locks.Yarn)

	if v := lockfile.PNPMLockVersion(ctx.Root); v != "" {
		r.Field("pnpm lockfileVersion", v)
	}
	if v := lockfile.NPMLockVersion(ctx.Root); v != "" {
		r.Field("npm lockfileVersion", v)
	}
	if name := lockfile.BunLockName(ctx.Root); name != "" {
		r.Printf("NOTE: %s present; bun is not covered by the install strategy.", name)
	}

	ctx.Strategy = strategy.Select(ctx.Locks, ctx.ToolAvailable)

	if argv, err := ctx.Config.InstallOverride(); err != nil {
		return err
	} else if argv != nil {
		ctx.Strategy.Installer = argv
		r.Printf("Installer command overridden by config")
	}
	if argv, err := ctx.Config.BuildOverride(); err != nil {
		return err
	} else if argv != nil {
		ctx.Strategy.Build = argv
		r.Printf("Build command overridden by config")
	}

	r.Printf("Installer command: %s", strings.Join(ctx.Strategy.Installer, " "))
	r.Printf("Build command: %s", strings.Join(ctx.Strategy.Build, " "))
	return nil
}
