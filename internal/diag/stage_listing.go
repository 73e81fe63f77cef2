package diag

import (
	"os"
	"strings"

	"github.com/fbdiag-dev/fbdiag/internal/fsview"
)

// ListingStage verifies the project root exists and prints the bounded
// top-level and recursive file listings.
type ListingStage struct{}

func (s *ListingStage) Name() string { return "listing" }

func (s *ListingStage) Run(ctx *Context) error {
	r := ctx.Report
	r.Section("PROJECT DIRECTORY CONTENTS (SANITY)")

	fi, err := os.Stat(ctx.Root)
	if err != nil || !fi.IsDir() {
		r.Printf("ERROR: project directory not found: %s", ctx.Root)
		return Exitf(ExitRootMissing, "project directory %s missing", ctx.Root)
	}

	top, err := fsview.TopLevel(ctx.Root, ctx.Config.Listing.TopLevelLimit)
	if err != nil {
		return err
	}
	r.Printf("Top-level entries: %s", strings.Join(top, ", "))

	r.Printf("")
	r.Printf("File listing (trimmed):")
	files, truncated, err := fsview.Tree(ctx.Root, ctx.Config.Listing.Exclude, ctx.Config.Listing.TreeLimit)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Printf("(no files found)")
		return nil
	}
	for _, f := range files {
		r.Printf("%s", f)
	}
	if truncated {
		r.Printf("%s", fsview.TruncationMarker)
	}
	return nil
}
