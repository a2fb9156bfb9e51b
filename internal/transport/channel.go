// Package transport owns the duplex message channel to one Volumetric
// Studio process.
//
// The channel address derives from the target pid, so callers need no side
// channel to discover it. Establishment is two-phase: a short fixed dial
// retry for the window between process spawn and channel creation, then a
// caller-bounded wait for the studio to enter message-framed mode, which can
// take minutes while the studio acquires licensing. A channel belongs to
// exactly one session and must never be reused after Close.
package transport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gofrs/flock"

	"studioctl/internal/logging"
)

var (
	// ErrConnectionRefused indicates the channel never reached ready state.
	ErrConnectionRefused = errors.New("studio connection refused")
	// ErrClosed indicates use of a channel after Close.
	ErrClosed = errors.New("channel closed")
	// ErrFrameTooLarge indicates a response frame exceeded the receive
	// buffer. Payloads that big are a protocol defect, not a case to grow
	// around.
	ErrFrameTooLarge = errors.New("frame exceeds receive buffer")
)

// MaxFrameSize caps a single received frame. Extended property reads top out
// in the tens of kilobytes.
const MaxFrameSize = 8192 * 8

const (
	dialAttempts         = 5
	defaultRetryInterval = time.Second
)

// Conn is one dialed connection to the studio.
type Conn interface {
	io.ReadWriteCloser
	// EnterMessageMode switches the connection into message-framed reads.
	// It keeps failing until the studio has finished its own startup.
	EnterMessageMode() error
}

// Dialer opens the per-pid studio endpoint.
type Dialer interface {
	Dial(pid int) (Conn, error)
}

// Options tunes channel establishment. The zero value selects the platform
// dialer, the wall clock, one-second retries, and lock files in the
// system temp directory.
type Options struct {
	Dialer        Dialer
	Clock         clock.Clock
	RetryInterval time.Duration
	LockDir       string
	Logger        *slog.Logger
}

// Channel is a duplex, message-framed connection to one studio process.
// It is owned by a single session and is not safe for concurrent use
// beyond its idempotent Close.
type Channel struct {
	pid    int
	conn   Conn
	reader *bufio.Reader
	lock   *flock.Flock
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Open establishes a ready channel to the given pid.
//
// startupTimeout bounds the second phase only: one readiness attempt per
// retry interval, for at most startupTimeout's worth of seconds. Exhaustion
// of either phase yields ErrConnectionRefused.
func Open(ctx context.Context, pid int, startupTimeout time.Duration, opts Options) (*Channel, error) {
	dialer := opts.Dialer
	if dialer == nil {
		dialer = defaultDialer()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	interval := opts.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	lockDir := opts.LockDir
	if lockDir == "" {
		lockDir = os.TempDir()
	}
	logger := logging.NewComponentLogger(opts.Logger, "transport").With(logging.Int(logging.FieldPID, pid))

	lock := flock.New(filepath.Join(lockDir, fmt.Sprintf("volumetricstudio_%d.lock", pid)))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire channel lock for pid %d: %w", pid, err)
	}
	if !locked {
		return nil, fmt.Errorf("channel to pid %d is already owned by another session", pid)
	}

	conn, err := dialWithRetry(ctx, dialer, clk, interval, pid, logger)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	if err := waitForMessageMode(ctx, conn, clk, interval, startupTimeout, pid, logger); err != nil {
		_ = conn.Close()
		_ = lock.Unlock()
		return nil, err
	}

	logger.Debug("channel ready")
	return &Channel{
		pid:    pid,
		conn:   conn,
		reader: bufio.NewReaderSize(conn, MaxFrameSize),
		lock:   lock,
		logger: logger,
	}, nil
}

func dialWithRetry(ctx context.Context, dialer Dialer, clk clock.Clock, interval time.Duration, pid int, logger *slog.Logger) (Conn, error) {
	var lastErr error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		conn, err := dialer.Dial(pid)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		logger.Debug("dial attempt failed", logging.Args(logging.Int("attempt", attempt), logging.Error(err))...)
		if attempt == dialAttempts {
			break
		}
		if err := sleep(ctx, clk, interval); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: dial channel for pid %d: %w", ErrConnectionRefused, pid, lastErr)
}

func waitForMessageMode(ctx context.Context, conn Conn, clk clock.Clock, interval, startupTimeout time.Duration, pid int, logger *slog.Logger) error {
	attempts := int(startupTimeout / time.Second)
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := conn.EnterMessageMode()
		if err == nil {
			return nil
		}
		lastErr = err
		logger.Debug("readiness attempt failed", logging.Args(logging.Int("attempt", attempt), logging.Error(err))...)
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, clk, interval); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: studio pid %d not ready after %d attempts: %w", ErrConnectionRefused, pid, attempts, lastErr)
}

func sleep(ctx context.Context, clk clock.Clock, d time.Duration) error {
	timer := clk.Timer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// PID returns the process the channel is bound to.
func (c *Channel) PID() int {
	return c.pid
}

// Send writes one frame. The frame must already carry its newline
// terminator (see protocol.EncodeRequest).
func (c *Channel) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("send frame: %w", err)
	}
	return nil
}

// Recv reads one newline-terminated frame, with the terminator stripped.
func (c *Channel) Recv() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	line, err := c.reader.ReadSlice('\n')
	if err != nil {
		if errors.Is(err, bufio.ErrBufferFull) {
			return nil, fmt.Errorf("%w: cap is %d bytes", ErrFrameTooLarge, MaxFrameSize)
		}
		return nil, fmt.Errorf("receive frame: %w", err)
	}
	frame := bytes.TrimRight(line, "\r\n")
	out := make([]byte, len(frame))
	copy(out, frame)
	return out, nil
}

// Close tears the channel down. Closing an already closed channel is a
// no-op so cleanup paths can call it unconditionally.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.conn.Close()
	if c.lock != nil {
		if unlockErr := c.lock.Unlock(); unlockErr != nil {
			c.logger.Warn("release channel lock", logging.Args(logging.Error(unlockErr))...)
		}
	}
	if err != nil {
		return fmt.Errorf("close channel: %w", err)
	}
	return nil
}
