package sessionctl

import (
	"fmt"
	"os/exec"
)

// launchProcess starts the studio executable detached from the controller.
// The studio outlives the controller when auto shutdown is off, so the child
// is released rather than reaped.
func launchProcess(executable string, args []string) (int, error) {
	cmd := exec.Command(executable, args...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("launch %s: %w", executable, err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return 0, fmt.Errorf("release %s: %w", executable, err)
	}
	return pid, nil
}
