//go:build !windows

package install

import (
	"errors"
	"fmt"
	"os/exec"
)

// findExecutable searches PATH on platforms without an installation registry.
func findExecutable(Options) (string, error) {
	path, err := exec.LookPath("volumetricstudio")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: volumetricstudio not on PATH; set studio.executable", ErrNotFound)
		}
		return "", fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return path, nil
}
