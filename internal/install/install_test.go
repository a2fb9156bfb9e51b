package install

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindExecutableOverride(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "studio")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write executable: %v", err)
	}

	path, err := FindExecutable(Options{Override: exe})
	if err != nil {
		t.Fatalf("FindExecutable: %v", err)
	}
	if path != exe {
		t.Fatalf("path = %q, want %q", path, exe)
	}
}

func TestFindExecutableOverrideMissing(t *testing.T) {
	_, err := FindExecutable(Options{Override: filepath.Join(t.TempDir(), "absent")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFindExecutableOverrideDirectory(t *testing.T) {
	_, err := FindExecutable(Options{Override: t.TempDir()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"2.0", "1.9", 1},
		{"2024.6.1", "2024.10.0", -1},
		{"1.0.0.1", "1.0", 1},
		{"1.0", "1.0.0", 0},
		{"dev", "1.0", -1},
	}
	for _, tc := range cases {
		if got := compareVersions(tc.a, tc.b); got != tc.want {
			t.Fatalf("compareVersions(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
