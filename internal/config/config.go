// Package config resolves epenv configuration and filesystem paths.
//
// Values are resolved in order, later sources winning:
//   - built-in defaults (the stock Portage locations)
//   - an optional YAML file, /etc/epenv/config.yaml or $EPENV_CONFIG
//   - environment variables (EPENV_PACKAGE_ENV_DIR, EPENV_WORLD_FILE,
//     EPENV_LOG_LEVEL, EPENV_SKIP_INVALID)
//
// Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dclews/portage-tools/internal/fsops"
	"github.com/dclews/portage-tools/internal/logging"
)

const (
	// DefaultPackageEnvDir is Portage's per-package environment directory.
	DefaultPackageEnvDir = "/etc/portage/package.env"

	// DefaultWorldFile is Portage's world set.
	DefaultWorldFile = "/var/lib/portage/world"

	// DefaultConfigFile is read when EPENV_CONFIG is unset.
	DefaultConfigFile = "/etc/epenv/config.yaml"

	// ConfigFileEnv names the environment variable overriding the config file path.
	ConfigFileEnv = "EPENV_CONFIG"
)

// Paths contains all the filesystem paths used by epenv.
type Paths struct {
	// PackageEnvDir holds one backing store per environment profile
	PackageEnvDir string `yaml:"package_env_dir" env:"EPENV_PACKAGE_ENV_DIR"`

	// WorldFile lists explicitly installed category/package pairs
	WorldFile string `yaml:"world_file" env:"EPENV_WORLD_FILE"`

	// ConfigFile is the YAML file the configuration was read from, if any
	ConfigFile string `yaml:"-"`
}

// Config is the resolved epenv configuration.
type Config struct {
	Paths `yaml:",inline"`

	// LogLevel is a zap level name or "none"
	LogLevel string `yaml:"log_level" env:"EPENV_LOG_LEVEL"`

	// SkipInvalid logs and skips malformed store lines instead of failing
	SkipInvalid bool `yaml:"skip_invalid" env:"EPENV_SKIP_INVALID"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Paths: Paths{
			PackageEnvDir: DefaultPackageEnvDir,
			WorldFile:     DefaultWorldFile,
		},
		LogLevel: logging.DefaultLevel,
	}
}

// Load resolves the configuration from defaults, the config file and the
// environment.
func Load(fs fsops.FS) (*Config, error) {
	cfg := Default()

	path := os.Getenv(ConfigFileEnv)
	if path == "" {
		path = DefaultConfigFile
	}
	if err := cfg.loadFile(fs, path); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(fs fsops.FS, path string) error {
	data, err := fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.ConfigFile = path
	return nil
}

// Validate checks that required paths are set.
func (c *Config) Validate() error {
	if c.PackageEnvDir == "" {
		return errors.New("package env directory must not be empty")
	}
	if c.WorldFile == "" {
		return errors.New("world file must not be empty")
	}
	return nil
}
