// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"os"
	"path/filepath"

	"tidyhook/internal/config"
	"tidyhook/internal/detect"
	"tidyhook/internal/gitrepo"
	"tidyhook/internal/helper"
	"tidyhook/internal/issue"
	"tidyhook/internal/overlay"
	"tidyhook/internal/runner"
)

// App wires the engine services behind the CLI. It is the composition
// root: the submodule context is detected exactly once here and handed to
// the overlay, so nothing downstream caches repository state.
type App struct {
	Config      *config.Config
	RepoContext gitrepo.Context
	Roots       *overlay.Roots
	Runner      *runner.ScriptRunner
	Detector    *detect.Detector
	Resolver    *helper.Resolver
	WorkDir     string
}

// buildApp loads configuration, detects the submodule context and
// assembles the overlay roots and services.
func buildApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load(config.LoadOptions{WorkDir: workDirFlag})
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithSuggestion("Run 'tidyhook config init' to write a fresh default file").
			WithSuggestion("Check that tidyhook.toml is valid TOML").
			Wrap(err).
			BuildError()
	}
	if cfg.Verbose && !verbose {
		initLogging(true)
	}

	work := workDirFlag
	if work == "" {
		work = cfg.WorkDir
	}
	if work == "" {
		if work, err = os.Getwd(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("determine working directory").
				Wrap(err).
				BuildError()
		}
	}

	repoCtx := gitrepo.Detect(ctx, work)

	roots := &overlay.Roots{
		Local: filepath.Join(work, cfg.LocalDir),
		Main:  filepath.Join(work, cfg.MainDir),
	}
	if repoCtx.IsSubmodule {
		roots.Submodule = filepath.Join(repoCtx.ParentTopLevel, cfg.MainDir)
	}

	sr := runner.NewScriptRunner(roots)
	det := detect.NewDetector(sr)

	return &App{
		Config:      cfg,
		RepoContext: repoCtx,
		Roots:       roots,
		Runner:      sr,
		Detector:    det,
		Resolver:    helper.NewResolver(cfg, roots, det),
		WorkDir:     work,
	}, nil
}
