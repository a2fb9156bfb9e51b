package procfind

import (
	"context"
	"errors"
	"testing"
)

type fakeEnumerator struct {
	procs []ProcessInfo
	alive map[int]bool
}

func (f fakeEnumerator) Processes(context.Context) ([]ProcessInfo, error) {
	return f.procs, nil
}

func (f fakeEnumerator) Alive(_ context.Context, pid int) (bool, error) {
	return f.alive[pid], nil
}

func TestResolveScanFindsSingleMatch(t *testing.T) {
	enum := fakeEnumerator{procs: []ProcessInfo{
		{PID: 10, Name: "bash"},
		{PID: 42, Name: "VolumetricStudio.exe"},
		{PID: 77, Name: "sshd"},
	}}
	pid, err := Resolve(context.Background(), enum, UnspecifiedPID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pid != 42 {
		t.Fatalf("pid = %d, want 42", pid)
	}
}

func TestResolveScanMatchesCaseInsensitive(t *testing.T) {
	enum := fakeEnumerator{procs: []ProcessInfo{{PID: 9, Name: "volumetricstudio"}}}
	pid, err := Resolve(context.Background(), enum, UnspecifiedPID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pid != 9 {
		t.Fatalf("pid = %d, want 9", pid)
	}
}

func TestResolveScanNoneFound(t *testing.T) {
	enum := fakeEnumerator{procs: []ProcessInfo{{PID: 10, Name: "bash"}}}
	_, err := Resolve(context.Background(), enum, UnspecifiedPID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveScanMultipleCandidates(t *testing.T) {
	enum := fakeEnumerator{procs: []ProcessInfo{
		{PID: 42, Name: "VolumetricStudio.exe"},
		{PID: 43, Name: "VolumetricStudio.exe"},
	}}
	_, err := Resolve(context.Background(), enum, UnspecifiedPID)
	if !errors.Is(err, ErrMultipleCandidates) {
		t.Fatalf("err = %v, want ErrMultipleCandidates", err)
	}
}

func TestResolveValidatesExplicitPID(t *testing.T) {
	enum := fakeEnumerator{alive: map[int]bool{42: true}}

	pid, err := Resolve(context.Background(), enum, 42)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pid != 42 {
		t.Fatalf("pid = %d, want 42", pid)
	}

	if _, err := Resolve(context.Background(), enum, 99); !errors.Is(err, ErrInvalidPID) {
		t.Fatalf("err = %v, want ErrInvalidPID", err)
	}
}
