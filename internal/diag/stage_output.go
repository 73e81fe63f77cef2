package diag

import (
	"os"
	"path/filepath"

	"github.com/fbdiag-dev/fbdiag/internal/fsview"
)

// Output candidates, in priority order. Only dist and build can become the
// publish directory; .next needs an export step before it is publishable.
var outputCandidates = []string{"dist", "build", ".next"}

// LocateOutputStage finds the publish directory after a successful build and
// lists its contents.
type LocateOutputStage struct{}

func (s *LocateOutputStage) Name() string { return "locate-output" }

func (s *LocateOutputStage) Run(ctx *Context) error {
	r := ctx.Report
	r.Section("LOCATE BUILD OUTPUT")

	var found []string
	for _, c := range outputCandidates {
		fi, err := os.Stat(filepath.Join(ctx.Root, c))
		if err == nil && fi.IsDir() {
			found = append(found, c)
		}
	}
	r.Printf("Build output candidates found: %v", found)

	for _, c := range found {
		if c == "dist" || c == "build" {
			ctx.PublishDir = filepath.Join(ctx.Root, c)
			break
		}
	}
	if ctx.PublishDir == "" {
		for _, c := range found {
			if c == ".next" {
				r.Printf("")
				r.Printf("NOTE: Detected .next. This is likely Next.js.")
				r.Printf("If you want a static site: ensure `next export` runs and output lands in `out/`.")
				break
			}
		}
		r.Printf("")
		r.Printf("ERROR: No dist/ or build/ directory produced. Build succeeded but output folder missing.")
		return Exitf(ExitNoOutput, "no publishable output directory")
	}

	r.Field("Publish directory", ctx.PublishDir)
	r.Section("PUBLISH DIRECTORY LISTING (TOP)")
	files, truncated, err := fsview.Tree(ctx.PublishDir, nil, ctx.Config.Listing.PublishLimit)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Printf("(empty output dir)")
	}
	for _, f := range files {
		r.Printf("%s", f)
	}
	if truncated {
		r.Printf("%s", fsview.TruncationMarker)
	}

	r.Section("SUCCESS")
	r.Printf("Frontend build diagnostics completed successfully.")
	return nil
}
