// Package logging exposes a zap logger configured from a level string.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LevelDebug logs discovery and per-mapping reload details
	LevelDebug = "debug"

	// LevelInfo logs persisted changes
	LevelInfo = "info"

	// LevelWarn logs skipped lines in lenient mode
	LevelWarn = "warn"

	// LevelNone disables logging
	LevelNone = "none"

	// DefaultLevel is used when no level is configured
	DefaultLevel = LevelWarn
)

// New returns a logger writing JSON to stderr at the given level.
func New(level string) (*zap.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = DefaultLevel
	}
	if level == LevelNone {
		return zap.NewNop(), nil
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	return cfg.Build()
}
