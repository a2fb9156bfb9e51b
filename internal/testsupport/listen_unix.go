//go:build !windows

package testsupport

import (
	"net"
	"testing"

	"studioctl/internal/transport"
)

// ListenStudio opens a listener at the channel address for pid inside dir,
// matching where transport.SocketDialer{Dir: dir} will connect.
func ListenStudio(t testing.TB, dir string, pid int) net.Listener {
	t.Helper()

	path := transport.SocketDialer{Dir: dir}.Path(pid)
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen %s: %v", path, err)
	}
	return ln
}

// StudioDialer returns the dialer matching ListenStudio's address scheme.
func StudioDialer(dir string) transport.Dialer {
	return transport.SocketDialer{Dir: dir}
}
