//go:build !windows

package transport

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"
)

func TestSocketDialerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	const pid = 4242

	ln, err := net.Listen("unix", socketPath(dir, pid))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		reader := bufio.NewReader(conn)
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		if line == "{\"method\":\"Version\",\"args\":[]}\n" {
			_, _ = conn.Write([]byte("{\"Success\":true,\"Value\":1.0}\n"))
		}
	}()

	opts := Options{
		Dialer:        SocketDialer{Dir: dir},
		RetryInterval: time.Millisecond,
		LockDir:       dir,
	}
	ch, err := Open(context.Background(), pid, time.Second, opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ch.Close()

	if err := ch.Send([]byte("{\"method\":\"Version\",\"args\":[]}\n")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	frame, err := ch.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if string(frame) != "{\"Success\":true,\"Value\":1.0}" {
		t.Fatalf("frame = %q", frame)
	}
}
