// Package install locates an installed Volumetric Studio executable.
package install

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrNotFound indicates no usable studio installation was located.
var ErrNotFound = errors.New("studio installation not found")

// Options controls installation lookup.
type Options struct {
	// Override skips lookup and uses this executable path directly.
	Override string
	// VersionHint pins a specific installed version, e.g. "2024.6.1".
	VersionHint string
	// PreferDevelopment selects a registered development build when present.
	PreferDevelopment bool
}

// FindExecutable returns the path of the studio executable to launch.
func FindExecutable(opts Options) (string, error) {
	if override := strings.TrimSpace(opts.Override); override != "" {
		info, err := os.Stat(override)
		if err != nil {
			return "", fmt.Errorf("%w: executable override %q: %w", ErrNotFound, override, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: executable override %q is a directory", ErrNotFound, override)
		}
		return override, nil
	}
	return findExecutable(opts)
}

// compareVersions orders dotted numeric version strings. Non-numeric
// segments sort as zero.
func compareVersions(a, b string) int {
	as := parseVersion(a)
	bs := parseVersion(b)
	for len(as) < len(bs) {
		as = append(as, 0)
	}
	for len(bs) < len(as) {
		bs = append(bs, 0)
	}
	for i := range as {
		switch {
		case as[i] < bs[i]:
			return -1
		case as[i] > bs[i]:
			return 1
		}
	}
	return 0
}

func parseVersion(value string) []int {
	parts := strings.Split(strings.TrimSpace(value), ".")
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			n = 0
		}
		nums[i] = n
	}
	return nums
}
