package diag

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fbdiag-dev/fbdiag/internal/envinfo"
	"github.com/fbdiag-dev/fbdiag/internal/version"
)

// EnvReportStage prints the report header: working directory, resolved root,
// runtime and platform, the CI flag, and the environment key listing.
type EnvReportStage struct{}

func (s *EnvReportStage) Name() string { return "env-report" }

func (s *EnvReportStage) Run(ctx *Context) error {
	r := ctx.Report
	r.Section("FRONTEND BUILD DIAGNOSTICS")

	if wd, err := os.Getwd(); err == nil {
		r.Field("PWD", wd)
	}
	if abs, err := filepath.Abs(ctx.Root); err == nil {
		ctx.Root = abs
	}
	r.Field("ROOT", ctx.Root)
	r.Field("Go", version.GoVersion())
	r.Field("Platform", version.Platform())

	ci := "(unset)"
	if ctx.Env.Has("CI") {
		ci = ctx.Env.Get("CI")
	}
	r.Field("CI", ci)

	// Names only, never values.
	r.Printf("ENV KEYS: %s", strings.Join(ctx.Env.Keys(), ", "))

	reportDotenv(ctx)
	return nil
}

// reportDotenv lists the key names of a .env file at the project root, when
// one exists. Same secrecy rule as the environment listing.
func reportDotenv(ctx *Context) {
	path := filepath.Join(ctx.Root, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	keys, err := envinfo.DotenvKeys(path)
	if err != nil {
		ctx.Report.Printf(".env: unreadable (%v)", err)
		return
	}
	ctx.Report.Printf(".env KEYS: %s", strings.Join(keys, ", "))
}
