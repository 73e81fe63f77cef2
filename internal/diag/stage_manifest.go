package diag

import (
	"errors"

	"github.com/fbdiag-dev/fbdiag/internal/manifest"
)

// ManifestStage loads package.json and summarizes it. Absence and parse
// failure each terminate the run with their own exit code.
type ManifestStage struct{}

func (s *ManifestStage) Name() string { return "manifest" }

func (s *ManifestStage) Run(ctx *Context) error {
	r := ctx.Report

	m, err := manifest.Load(ctx.Root)
	if errors.Is(err, manifest.ErrMissing) {
		r.Section("ERROR")
		r.Printf("package.json not found inside %s. The project root is likely wrong.", ctx.Root)
		return Exitf(ExitManifestMissing, "missing package.json")
	}
	var perr *manifest.ParseError
	if errors.As(err, &perr) {
		r.Section("PACKAGE.JSON SUMMARY")
		r.Printf("Failed to parse package.json: %v", perr.Err)
		return Exitf(ExitManifestInvalid, "unparsable package.json")
	}
	if err != nil {
		return err
	}
	ctx.Manifest = m

	r.Section("PACKAGE.JSON SUMMARY")
	r.Field("name", m.Name)
	r.Field("type", m.Type)
	r.JSON("engines", m.Engines)
	r.JSON("scripts", m.Scripts)

	if v, src := manifest.PinnedNodeVersion(ctx.Root); v != "" {
		r.Printf("node version pinned by %s: %s", src, v)
	}
	return nil
}
