package testsupport

import (
	"bufio"
	"encoding/json"
	"net"
	"sync"
	"testing"

	"studioctl/internal/protocol"
)

// StubHandler produces the result for one method invocation. Returning an
// error yields a failure envelope carrying the error text.
type StubHandler func(method string, args []json.RawMessage) (any, error)

// StubStudio serves the studio wire protocol in-process: one JSON frame per
// line in, one response frame per line out. It accepts any number of
// connections and answers each request through the handler.
type StubStudio struct {
	t       testing.TB
	ln      net.Listener
	handler StubHandler

	mu    sync.Mutex
	calls []string

	wg sync.WaitGroup
}

// ServeStub starts a stub studio on the listener. A nil handler answers
// every method with an empty success envelope, except Version which reports
// 1.0. The stub shuts down on test cleanup.
func ServeStub(t testing.TB, ln net.Listener, handler StubHandler) *StubStudio {
	t.Helper()

	if handler == nil {
		handler = VersionHandler("1.0")
	}
	stub := &StubStudio{t: t, ln: ln, handler: handler}
	stub.wg.Add(1)
	go stub.acceptLoop()
	t.Cleanup(stub.Close)
	return stub
}

// VersionHandler answers Version with the given revision, encoded as a bare
// JSON number the way the studio reports it, and everything else with an
// empty success envelope.
func VersionHandler(version string) StubHandler {
	return func(method string, _ []json.RawMessage) (any, error) {
		if method == "Version" {
			return json.RawMessage(version), nil
		}
		return nil, nil
	}
}

// Calls returns the methods received so far, in order.
func (s *StubStudio) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// Close stops accepting and waits for connection goroutines to drain.
func (s *StubStudio) Close() {
	_ = s.ln.Close()
	s.wg.Wait()
}

func (s *StubStudio) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

func (s *StubStudio) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var req struct {
			Method string            `json:"method"`
			Args   []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			return
		}

		s.mu.Lock()
		s.calls = append(s.calls, req.Method)
		s.mu.Unlock()

		resp := protocol.Response{Success: true}
		value, err := s.handler(req.Method, req.Args)
		if err != nil {
			resp.Success = false
			resp.Error = err.Error()
		} else if value != nil {
			encoded, marshalErr := json.Marshal(value)
			if marshalErr != nil {
				return
			}
			resp.Value = encoded
		}

		frame, err := json.Marshal(resp)
		if err != nil {
			return
		}
		if _, err := conn.Write(append(frame, '\n')); err != nil {
			return
		}
	}
}
