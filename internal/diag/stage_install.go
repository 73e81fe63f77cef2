package diag

import "strings"

// runFatal spawns argv in the project root with the snapshot environment and
// terminates the run with the child's exit code when it fails.
func runFatal(ctx *Context, argv []string) error {
	ctx.Report.Command(argv, ctx.Root)
	res, err := ctx.Runner.Run(argv, ctx.Root, ctx.Env.Environ())
	if err != nil {
		return err
	}
	ctx.Report.Raw(res.Output)
	if res.Code != 0 {
		ctx.Report.Printf("")
		ctx.Report.Printf("!! Command failed (exit=%d): %s", res.Code, strings.Join(argv, " "))
		return Exitf(res.Code, "command failed: %s", strings.Join(argv, " "))
	}
	return nil
}

type InstallStage struct{}

func (s *InstallStage) Name() string { return "install" }

func (s *InstallStage) Run(ctx *Context) error {
	ctx.Report.Section("INSTALL DEPENDENCIES")
	return runFatal(ctx, ctx.Strategy.Installer)
}

type BuildStage struct{}

func (s *BuildStage) Name() string { return "build" }

func (s *BuildStage) Run(ctx *Context) error {
	ctx.Report.Section("RUN BUILD")
	return runFatal(ctx, ctx.Strategy.Build)
}
