package diag

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbdiag-dev/fbdiag/internal/config"
	"github.com/fbdiag-dev/fbdiag/internal/envinfo"
	"github.com/fbdiag-dev/fbdiag/internal/fsview"
	"github.com/fbdiag-dev/fbdiag/internal/report"
	"github.com/fbdiag-dev/fbdiag/internal/runner"
	"github.com/fbdiag-dev/fbdiag/internal/strategy"
)

// stubRunner records invocations and replays canned results, so no stage
// test spawns a real process.
type stubRunner struct {
	calls   [][]string
	results map[string]runner.Result
	errs    map[string]error
}

func (s *stubRunner) Run(argv []string, dir string, env []string) (runner.Result, error) {
	s.calls = append(s.calls, argv)
	key := strings.Join(argv, " ")
	if err, ok := s.errs[key]; ok {
		return runner.Result{}, err
	}
	if res, ok := s.results[key]; ok {
		return res, nil
	}
	return runner.Result{Output: "ok\n"}, nil
}

func newTestContext(root string) (*Context, *bytes.Buffer, *stubRunner) {
	var buf bytes.Buffer
	run := &stubRunner{
		results: make(map[string]runner.Result),
		errs:    make(map[string]error),
	}
	ctx := &Context{
		Config: config.Default(),
		Report: report.New(&buf),
		Runner: run,
		Env:    envinfo.NewSnapshot([]string{"PATH=/usr/bin", "CI=true", "HOME=/home/u"}),
		Root:   root,
		Tools:  map[string]string{},
	}
	return ctx, &buf, run
}

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestEnvReportStage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".env", "API_KEY=supersecret\nDB_URL=postgres://x\n")
	ctx, buf, _ := newTestContext(root)

	require.NoError(t, (&EnvReportStage{}).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "FRONTEND BUILD DIAGNOSTICS")
	assert.Contains(t, out, "ROOT: "+root)
	assert.Contains(t, out, "CI: true")
	assert.Contains(t, out, "ENV KEYS: CI, HOME, PATH")
	assert.Contains(t, out, ".env KEYS: API_KEY, DB_URL")
	assert.NotContains(t, out, "supersecret")
	assert.True(t, filepath.IsAbs(ctx.Root))
}

func TestEnvReportStage_CIUnset(t *testing.T) {
	ctx, buf, _ := newTestContext(t.TempDir())
	ctx.Env = envinfo.NewSnapshot([]string{"PATH=/usr/bin"})

	require.NoError(t, (&EnvReportStage{}).Run(ctx))
	assert.Contains(t, buf.String(), "CI: (unset)")
}

func TestToolingStage(t *testing.T) {
	ctx, buf, run := newTestContext(t.TempDir())
	which := func(name string) string {
		if name == "node" || name == "npm" {
			return "/usr/bin/" + name
		}
		return ""
	}
	run.results["npm -v"] = runner.Result{Code: 1, Output: "npm broke\n"}

	require.NoError(t, (&ToolingStage{Which: which}).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "node: /usr/bin/node")
	assert.Contains(t, out, "pnpm: (not found)")
	assert.Contains(t, out, "yarn: (not found)")
	// Version checks run only for found tools, and a failure is ignored.
	assert.Equal(t, [][]string{{"node", "-v"}, {"npm", "-v"}}, run.calls)
	assert.Contains(t, out, "(exit=1, ignored)")

	assert.Equal(t, "/usr/bin/npm", ctx.Tools["npm"])
	assert.True(t, ctx.ToolAvailable("node"))
	assert.False(t, ctx.ToolAvailable("yarn"))
}

func TestListingStage_RootMissing(t *testing.T) {
	ctx, buf, _ := newTestContext(filepath.Join(t.TempDir(), "gone"))

	err := (&ListingStage{}).Run(ctx)
	assert.Equal(t, ExitRootMissing, exitCode(t, err))
	assert.Contains(t, buf.String(), "ERROR: project directory not found")
}

func TestListingStage_Listing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", "{}")
	writeFile(t, root, "src/app.js", "")
	writeFile(t, root, "node_modules/dep/index.js", "")
	ctx, buf, _ := newTestContext(root)

	require.NoError(t, (&ListingStage{}).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "Top-level entries: node_modules, package.json, src")
	assert.Contains(t, out, "src/app.js")
	assert.NotContains(t, out, "dep/index.js")
	assert.NotContains(t, out, fsview.TruncationMarker)
}

func TestListingStage_Truncation(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.js", "b.js", "c.js", "d.js"} {
		writeFile(t, root, name, "")
	}
	ctx, buf, _ := newTestContext(root)
	ctx.Config.Listing.TreeLimit = 2

	require.NoError(t, (&ListingStage{}).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "a.js\nb.js\n"+fsview.TruncationMarker)
	assert.NotContains(t, out, "c.js")
}

func TestListingStage_NoFiles(t *testing.T) {
	ctx, buf, _ := newTestContext(t.TempDir())
	require.NoError(t, (&ListingStage{}).Run(ctx))
	assert.Contains(t, buf.String(), "(no files found)")
}

func TestManifestStage_Missing(t *testing.T) {
	ctx, buf, _ := newTestContext(t.TempDir())

	err := (&ManifestStage{}).Run(ctx)
	assert.Equal(t, ExitManifestMissing, exitCode(t, err))
	assert.Contains(t, buf.String(), "package.json not found")
}

func TestManifestStage_Malformed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "x",`)
	ctx, buf, _ := newTestContext(root)

	err := (&ManifestStage{}).Run(ctx)
	assert.Equal(t, ExitManifestInvalid, exitCode(t, err))
	assert.Contains(t, buf.String(), "Failed to parse package.json")
}

func TestManifestStage_Summary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
		"name": "shop-frontend",
		"type": "module",
		"engines": {"node": ">=20"},
		"scripts": {"build": "vite build"}
	}`)
	writeFile(t, root, ".nvmrc", "20.11.1\n")
	ctx, buf, _ := newTestContext(root)

	require.NoError(t, (&ManifestStage{}).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "name: shop-frontend")
	assert.Contains(t, out, "type: module")
	assert.Contains(t, out, `"node": ">=20"`)
	assert.Contains(t, out, `"build": "vite build"`)
	assert.Contains(t, out, "node version pinned by .nvmrc: 20.11.1")
	require.NotNil(t, ctx.Manifest)
	assert.Equal(t, "shop-frontend", ctx.Manifest.Name)
}

func TestStrategyStage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pnpm-lock.yaml", "lockfileVersion: '9.0'\n")
	writeFile(t, root, "package-lock.json", `{"lockfileVersion": 3}`)
	ctx, buf, _ := newTestContext(root)
	ctx.Tools = map[string]string{"pnpm": "/usr/bin/pnpm", "npm": "/usr/bin/npm"}

	require.NoError(t, (&StrategyStage{}).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "pnpm-lock.yaml=true")
	assert.Contains(t, out, "package-lock.json=true")
	assert.Contains(t, out, "yarn.lock=false")
	assert.Contains(t, out, "pnpm lockfileVersion: 9.0")
	assert.Contains(t, out, "Installer command: pnpm install --frozen-lockfile")
	assert.Contains(t, out, "Build command: pnpm run build")
	assert.Equal(t, []string{"pnpm", "install", "--frozen-lockfile"}, ctx.Strategy.Installer)
}

func TestStrategyStage_ConfigOverride(t *testing.T) {
	ctx, buf, _ := newTestContext(t.TempDir())
	ctx.Config.Commands.Build = `npm run build:prod`

	require.NoError(t, (&StrategyStage{}).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "Build command overridden by config")
	assert.Contains(t, out, "Build command: npm run build:prod")
	assert.Equal(t, []string{"npm", "install"}, ctx.Strategy.Installer)
}

func TestStrategyStage_BunAdvisory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bun.lockb", "")
	ctx, buf, _ := newTestContext(root)

	require.NoError(t, (&StrategyStage{}).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "NOTE: bun.lockb present")
	// bun never affects the selected commands
	assert.Equal(t, []string{"npm", "install"}, ctx.Strategy.Installer)
}

func TestInstallStage_PropagatesChildExit(t *testing.T) {
	ctx, buf, run := newTestContext(t.TempDir())
	ctx.Strategy = strategy.Strategy{Installer: []string{"npm", "ci"}}
	run.results["npm ci"] = runner.Result{Code: 7, Output: "ERESOLVE\n"}

	err := (&InstallStage{}).Run(ctx)
	assert.Equal(t, 7, exitCode(t, err))

	out := buf.String()
	assert.Contains(t, out, "$ npm ci")
	assert.Contains(t, out, "ERESOLVE")
	assert.Contains(t, out, "!! Command failed (exit=7): npm ci")
}

func TestBuildStage_Success(t *testing.T) {
	ctx, buf, run := newTestContext(t.TempDir())
	ctx.Strategy = strategy.Strategy{Build: []string{"npm", "run", "build"}}
	run.results["npm run build"] = runner.Result{Output: "built in 3s\n"}

	require.NoError(t, (&BuildStage{}).Run(ctx))
	assert.Contains(t, buf.String(), "built in 3s")
	assert.NotContains(t, buf.String(), "!! Command failed")
}

func TestBuildStage_SpawnErrorIsNotAnExitError(t *testing.T) {
	ctx, _, run := newTestContext(t.TempDir())
	ctx.Strategy = strategy.Strategy{Build: []string{"ghost"}}
	run.errs["ghost"] = errors.New("exec ghost: not found")

	err := (&BuildStage{}).Run(ctx)
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestLocateOutputStage_Dist(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dist/index.html", "")
	writeFile(t, root, "dist/assets/app.js", "")
	writeFile(t, root, "dist/assets/app.css", "")
	ctx, buf, _ := newTestContext(root)

	require.NoError(t, (&LocateOutputStage{}).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "Publish directory: "+filepath.Join(root, "dist"))
	assert.Contains(t, out, "PUBLISH DIRECTORY LISTING (TOP)")
	assert.Contains(t, out, "assets/app.css\nassets/app.js\nindex.html")
	assert.NotContains(t, out, fsview.TruncationMarker)
	assert.Contains(t, out, "SUCCESS")
}

func TestLocateOutputStage_DistWinsOverBuild(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dist/a", "")
	writeFile(t, root, "build/b", "")
	ctx, _, _ := newTestContext(root)

	require.NoError(t, (&LocateOutputStage{}).Run(ctx))
	assert.Equal(t, filepath.Join(root, "dist"), ctx.PublishDir)
}

func TestLocateOutputStage_NextOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".next/BUILD_ID", "abc")
	ctx, buf, _ := newTestContext(root)

	err := (&LocateOutputStage{}).Run(ctx)
	assert.Equal(t, ExitNoOutput, exitCode(t, err))

	out := buf.String()
	assert.Contains(t, out, "NOTE: Detected .next. This is likely Next.js.")
	assert.Contains(t, out, "next export")
	assert.Contains(t, out, "ERROR: No dist/ or build/ directory produced")
	assert.NotContains(t, out, "PUBLISH DIRECTORY LISTING")
}

func TestLocateOutputStage_NoCandidates(t *testing.T) {
	ctx, buf, _ := newTestContext(t.TempDir())

	err := (&LocateOutputStage{}).Run(ctx)
	assert.Equal(t, ExitNoOutput, exitCode(t, err))
	assert.NotContains(t, buf.String(), "NOTE: Detected .next")
}

func TestLocateOutputStage_EmptyDist(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dist"), 0755))
	ctx, buf, _ := newTestContext(root)

	require.NoError(t, (&LocateOutputStage{}).Run(ctx))
	assert.Contains(t, buf.String(), "(empty output dir)")
}
