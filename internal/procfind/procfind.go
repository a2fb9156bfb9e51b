// Package procfind resolves the target Volumetric Studio process.
//
// Lookup runs either by scanning the process table for the studio executable
// or by validating a caller-supplied pid. Enumeration sits behind a small
// interface so tests never touch the real process table.
package procfind

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

var (
	// ErrNotFound indicates no running studio instance was found.
	ErrNotFound = errors.New("studio process not found")
	// ErrInvalidPID indicates the supplied pid does not name a live process.
	ErrInvalidPID = errors.New("invalid studio process id")
	// ErrMultipleCandidates indicates several studio instances are running
	// and the caller must pick one explicitly.
	ErrMultipleCandidates = errors.New("multiple studio processes running")
)

// UnspecifiedPID is the hint value requesting a process-table scan.
const UnspecifiedPID = 0

// ExecutableNames lists process names recognized as Volumetric Studio.
var ExecutableNames = []string{"VolumetricStudio.exe", "volumetricstudio"}

// ProcessInfo describes one entry of a process enumeration.
type ProcessInfo struct {
	PID  int
	Name string
}

// Enumerator abstracts OS process-table access.
type Enumerator interface {
	Processes(ctx context.Context) ([]ProcessInfo, error)
	Alive(ctx context.Context, pid int) (bool, error)
}

// SystemEnumerator reads the real process table via gopsutil.
type SystemEnumerator struct{}

func (SystemEnumerator) Processes(ctx context.Context) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}
	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Processes can exit mid-enumeration or deny access.
			continue
		}
		infos = append(infos, ProcessInfo{PID: int(p.Pid), Name: name})
	}
	return infos, nil
}

func (SystemEnumerator) Alive(ctx context.Context, pid int) (bool, error) {
	return process.PidExistsWithContext(ctx, int32(pid))
}

// Resolve returns the pid of the studio instance to control.
//
// With UnspecifiedPID it scans for the studio executable and requires exactly
// one match; otherwise it validates that the given pid is live.
func Resolve(ctx context.Context, enum Enumerator, pid int) (int, error) {
	if enum == nil {
		enum = SystemEnumerator{}
	}

	if pid != UnspecifiedPID {
		alive, err := enum.Alive(ctx, pid)
		if err != nil {
			return 0, fmt.Errorf("%w: pid %d: %w", ErrInvalidPID, pid, err)
		}
		if !alive {
			return 0, fmt.Errorf("%w: pid %d is not running", ErrInvalidPID, pid)
		}
		return pid, nil
	}

	infos, err := enum.Processes(ctx)
	if err != nil {
		return 0, err
	}
	matches := make([]int, 0, 1)
	for _, info := range infos {
		if isStudioName(info.Name) {
			matches = append(matches, info.PID)
		}
	}
	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("%w: specify a pid or start the studio first", ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("%w: pids %v, specify one explicitly", ErrMultipleCandidates, matches)
	}
}

func isStudioName(name string) bool {
	for _, candidate := range ExecutableNames {
		if strings.EqualFold(name, candidate) {
			return true
		}
	}
	return false
}
