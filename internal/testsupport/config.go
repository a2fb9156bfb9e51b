// Package testsupport provides shared helpers for controller tests: temp
// configs, history stores, and an in-process stub studio that speaks the
// wire protocol.
package testsupport

import (
	"path/filepath"
	"testing"

	"studioctl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Timeouts.LaunchSeconds = 2
	cfg.Timeouts.AttachSeconds = 2

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithExecutable sets an explicit studio binary path on the test config.
func WithExecutable(path string) ConfigOption {
	return func(c *config.Config) {
		c.Studio.Executable = path
	}
}

// WithHistoryDisabled turns off session history recording.
func WithHistoryDisabled() ConfigOption {
	return func(c *config.Config) {
		c.History.Enabled = false
	}
}
