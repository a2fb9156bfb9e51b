//go:build !windows

package transport

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SocketDialer connects to the per-pid Unix domain socket the studio
// creates at startup. Dir overrides the runtime directory, which tests use
// to point at a temporary stub.
type SocketDialer struct {
	Dir string
}

func (d SocketDialer) Dial(pid int) (Conn, error) {
	path := d.Path(pid)
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", path, err)
	}
	return socketConn{conn}, nil
}

type socketConn struct {
	net.Conn
}

// EnterMessageMode is a no-op on Unix sockets: the studio only accepts the
// connection once it is ready to serve, so acceptance doubles as the
// readiness signal.
func (socketConn) EnterMessageMode() error {
	return nil
}

// Path returns the channel address the dialer would connect to for a pid.
func (d SocketDialer) Path(pid int) string {
	return socketPath(d.Dir, pid)
}

// SocketPath returns the channel address for a pid using the default
// runtime directory.
func SocketPath(pid int) string {
	return socketPath("", pid)
}

func socketPath(dir string, pid int) string {
	if dir == "" {
		if runtime, ok := os.LookupEnv("XDG_RUNTIME_DIR"); ok && strings.TrimSpace(runtime) != "" {
			dir = runtime
		} else {
			dir = os.TempDir()
		}
	}
	return filepath.Join(dir, fmt.Sprintf("volumetricstudio_%d.sock", pid))
}

func defaultDialer() Dialer {
	return SocketDialer{}
}
