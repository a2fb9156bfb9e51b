//go:build windows

package testsupport

import (
	"net"
	"testing"

	"github.com/Microsoft/go-winio"

	"studioctl/internal/transport"
)

// ListenStudio opens a message-mode named pipe at the channel address for
// pid. The dir argument exists for signature parity with the Unix variant
// and is ignored; pipe names are global on Windows.
func ListenStudio(t testing.TB, _ string, pid int) net.Listener {
	t.Helper()

	name := transport.PipeName(pid)
	ln, err := winio.ListenPipe(name, &winio.PipeConfig{MessageMode: true})
	if err != nil {
		t.Fatalf("listen %s: %v", name, err)
	}
	return ln
}

// StudioDialer returns the dialer matching ListenStudio's address scheme.
// Pipe names are global, so the directory is ignored and the platform
// default dialer applies.
func StudioDialer(string) transport.Dialer {
	return nil
}
