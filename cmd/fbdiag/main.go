package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fbdiag-dev/fbdiag/internal/config"
	"github.com/fbdiag-dev/fbdiag/internal/diag"
	"github.com/fbdiag-dev/fbdiag/internal/envinfo"
	"github.com/fbdiag-dev/fbdiag/internal/report"
	"github.com/fbdiag-dev/fbdiag/internal/runner"
	"github.com/fbdiag-dev/fbdiag/internal/version"
)

func main() {
	// Handle subcommands before flag parsing
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("fbdiag %s (%s) built %s\n", version.Version, version.Commit, version.BuildDate)
		return
	}

	var (
		root       = flag.String("root", ".", "project directory to diagnose")
		configPath = flag.String("config", "", "path to fbdiag.toml")
		dryRun     = flag.Bool("dry-run", false, "stop after strategy selection; do not install or build")
		showVer    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Printf("fbdiag %s (%s) built %s\n", version.Version, version.Commit, version.BuildDate)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		*root = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fbdiag: %v\n", err)
		os.Exit(1)
	}

	ctx := &diag.Context{
		Config: cfg,
		Report: report.New(os.Stdout),
		Runner: runner.ExecRunner{},
		Env:    envinfo.NewSnapshot(os.Environ()),
		Root:   *root,
	}

	p := diag.NewPipeline()
	p.AddStage(&diag.EnvReportStage{})
	p.AddStage(&diag.ToolingStage{})
	p.AddStage(&diag.ListingStage{})
	p.AddStage(&diag.ManifestStage{})
	p.AddStage(&diag.StrategyStage{})
	if !*dryRun {
		p.AddStage(&diag.InstallStage{})
		p.AddStage(&diag.BuildStage{})
		p.AddStage(&diag.LocateOutputStage{})
	}

	if err := p.Run(ctx); err != nil {
		var exitErr *diag.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "fbdiag: %v\n", err)
		os.Exit(1)
	}
}
