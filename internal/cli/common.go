package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dclews/portage-tools/internal/config"
	"github.com/dclews/portage-tools/internal/engine"
	"github.com/dclews/portage-tools/internal/fsops"
	"github.com/dclews/portage-tools/internal/logging"
)

// loadConfig resolves the configuration and applies explicitly set global
// flags on top of it.
func loadConfig(cmd *cobra.Command, fs fsops.FS) (*config.Config, error) {
	cfg, err := config.Load(fs)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("package-env-dir") {
		cfg.PackageEnvDir = packageEnvDir
	}
	if flags.Changed("world-file") {
		cfg.WorldFile = worldFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("skip-invalid") {
		cfg.SkipInvalid = skipInvalid
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	fs := fsops.NewRealFS()

	cfg, err := loadConfig(cmd, fs)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	return engine.New(fs, cfg, logger), nil
}
