// Package engine provides the core operations behind the epenv commands.
//
// The engine sits between the CLI and the lower-level packages. It discovers
// environment mappings under the configured package.env directory, loads
// them, and checks and records atom assignments.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - List/Show: Summaries and contents of loaded mappings
//   - Set: Conflict-checked assignment of an atom to a profile
//   - Check: Detection of atoms assigned to more than one profile
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dclews/portage-tools/internal/atom"
	"github.com/dclews/portage-tools/internal/config"
	"github.com/dclews/portage-tools/internal/envmap"
	"github.com/dclews/portage-tools/internal/fsops"
	"github.com/dclews/portage-tools/internal/world"
)

// Engine orchestrates all epenv operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs          fsops.FS
	paths       config.Paths
	skipInvalid bool
	logger      *zap.Logger
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, cfg *config.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		fs:          fs,
		paths:       cfg.Paths,
		skipInvalid: cfg.SkipInvalid,
		logger:      logger,
	}
}

// Paths returns the paths the engine operates on.
func (e *Engine) Paths() config.Paths {
	return e.paths
}

func (e *Engine) mappingOptions() []envmap.Option {
	return []envmap.Option{
		envmap.WithLogger(e.logger),
		envmap.WithSkipInvalid(e.skipInvalid),
	}
}

// newMapping creates an unloaded mapping for profile.
func (e *Engine) newMapping(profile string) *envmap.Mapping {
	return envmap.New(e.fs, e.paths.PackageEnvDir, profile, e.mappingOptions()...)
}

// LoadMappings discovers and reloads every mapping. Any failure aborts the
// whole load.
func (e *Engine) LoadMappings(ctx context.Context) ([]*envmap.Mapping, error) {
	profiles, err := envmap.Discover(e.fs, e.paths.PackageEnvDir)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("discovered environment profiles",
		zap.String("dir", e.paths.PackageEnvDir),
		zap.Strings("profiles", profiles))

	mappings := make([]*envmap.Mapping, 0, len(profiles))
	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := e.newMapping(profile)
		if err := m.Reload(); err != nil {
			return nil, fmt.Errorf("failed to load environment mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// InWorldSet reports whether a's category/package is recorded in the world
// file. No command consults it yet.
func (e *Engine) InWorldSet(a atom.Atom) (bool, error) {
	return world.New(e.fs, e.paths.WorldFile).Contains(a)
}
