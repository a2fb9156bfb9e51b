//go:build windows

package transport

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// PipeName returns the channel address for a pid.
func PipeName(pid int) string {
	return fmt.Sprintf(`\\.\pipe\VolumetricStudio_%d`, pid)
}

// pipeDialer opens the studio's per-pid named pipe. The raw handle is kept
// so the readiness phase can switch the pipe into message read mode, which
// the studio refuses until its startup (including licensing) completes.
type pipeDialer struct{}

func (pipeDialer) Dial(pid int) (Conn, error) {
	name, err := windows.UTF16PtrFromString(PipeName(pid))
	if err != nil {
		return nil, fmt.Errorf("pipe name for pid %d: %w", pid, err)
	}
	handle, err := windows.CreateFile(
		name,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("open pipe %s: %w", PipeName(pid), err)
	}
	return &pipeConn{handle: handle}, nil
}

type pipeConn struct {
	handle windows.Handle
}

func (p *pipeConn) EnterMessageMode() error {
	mode := uint32(windows.PIPE_READMODE_MESSAGE)
	if err := windows.SetNamedPipeHandleState(p.handle, &mode, nil, nil); err != nil {
		return fmt.Errorf("set message read mode: %w", err)
	}
	return nil
}

func (p *pipeConn) Read(buf []byte) (int, error) {
	var done uint32
	if err := windows.ReadFile(p.handle, buf, &done, nil); err != nil {
		return int(done), err
	}
	return int(done), nil
}

func (p *pipeConn) Write(buf []byte) (int, error) {
	var done uint32
	if err := windows.WriteFile(p.handle, buf, &done, nil); err != nil {
		return int(done), err
	}
	return int(done), nil
}

func (p *pipeConn) Close() error {
	return windows.CloseHandle(p.handle)
}

func defaultDialer() Dialer {
	return pipeDialer{}
}
