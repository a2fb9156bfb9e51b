package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPassesValidation(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Timeouts.LaunchSeconds != 300 || cfg.Timeouts.AttachSeconds != 60 {
		t.Fatalf("unexpected timeout defaults: %+v", cfg.Timeouts)
	}
	if !cfg.Studio.PreferDevelopment {
		t.Fatal("expected prefer_development default true")
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`log_dir = "` + filepath.ToSlash(filepath.Join(dir, "logs")) + `"`,
		`state_dir = "` + filepath.ToSlash(filepath.Join(dir, "state")) + `"`,
		"[timeouts]",
		"launch_seconds = 45",
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Timeouts.LaunchSeconds != 45 {
		t.Fatalf("launch_seconds = %d, want 45", cfg.Timeouts.LaunchSeconds)
	}
	if cfg.Timeouts.AttachSeconds != 60 {
		t.Fatalf("attach_seconds should keep default, got %d", cfg.Timeouts.AttachSeconds)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format should be normalized to json, got %q", cfg.Logging.Format)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config to be reported as absent")
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default level, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	cfg.Timeouts.LaunchSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero launch timeout")
	}
	cfg.Timeouts.LaunchSeconds = 300

	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/x")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "x") {
		t.Fatalf("ExpandPath(~/x) = %q", got)
	}
}
