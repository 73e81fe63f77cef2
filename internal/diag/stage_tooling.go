package diag

import (
	"github.com/fbdiag-dev/fbdiag/internal/toolprobe"
)

// ToolingStage locates the package-manager executables and runs their version
// checks. Version checks are advisory: a failure is reported, never fatal.
type ToolingStage struct {
	// Which resolves an executable on PATH; nil means toolprobe.Which.
	Which func(string) string
}

func (s *ToolingStage) Name() string { return "tooling" }

func (s *ToolingStage) Run(ctx *Context) error {
	which := s.Which
	if which == nil {
		which = toolprobe.Which
	}

	r := ctx.Report
	r.Section("CHECK TOOLING AVAILABILITY")

	ctx.Tools = make(map[string]string, len(toolprobe.Tools))
	for _, tool := range toolprobe.Tools {
		path := which(tool)
		ctx.Tools[tool] = path
		if path == "" {
			r.Field(tool, "(not found)")
		} else {
			r.Field(tool, path)
		}
	}

	for _, tool := range toolprobe.Tools {
		if ctx.Tools[tool] == "" {
			continue
		}
		argv := []string{tool, "-v"}
		r.Command(argv, ctx.Root)
		res, err := ctx.Runner.Run(argv, ctx.Root, ctx.Env.Environ())
		if err != nil {
			r.Printf("version check failed: %v", err)
			continue
		}
		r.Raw(res.Output)
		if res.Code != 0 {
			r.Printf("(exit=%d, ignored)", res.Code)
		}
	}
	return nil
}
