package diag

import (
	"github.com/fbdiag-dev/fbdiag/internal/config"
	"github.com/fbdiag-dev/fbdiag/internal/envinfo"
	"github.com/fbdiag-dev/fbdiag/internal/lockfile"
	"github.com/fbdiag-dev/fbdiag/internal/manifest"
	"github.com/fbdiag-dev/fbdiag/internal/report"
	"github.com/fbdiag-dev/fbdiag/internal/runner"
	"github.com/fbdiag-dev/fbdiag/internal/strategy"
)

// Stage is one step of the diagnostic sequence.
type Stage interface {
	Name() string
	Run(ctx *Context) error
}

// Context carries everything stages share.
type Context struct {
	Config *config.Config
	Report *report.Writer
	Runner runner.Runner
	Env    *envinfo.Snapshot

	// Root is the project directory under diagnosis. The env-report stage
	// resolves it to an absolute path.
	Root string

	// Enriched as stages run.
	Tools      map[string]string // executable name → resolved path, "" if absent
	Manifest   *manifest.Manifest
	Locks      lockfile.Presence
	Strategy   strategy.Strategy
	PublishDir string
}

// ToolAvailable reports whether the tooling probe found the named executable.
func (c *Context) ToolAvailable(name string) bool {
	return c.Tools[name] != ""
}
