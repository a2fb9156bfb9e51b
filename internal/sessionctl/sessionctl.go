// Package sessionctl orchestrates scoped automation sessions: start a new
// studio instance or attach to a running one, hand a ready client to the
// caller, and guarantee teardown on every exit path.
package sessionctl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"studioctl/internal/config"
	"studioctl/internal/history"
	"studioctl/internal/install"
	"studioctl/internal/logging"
	"studioctl/internal/procfind"
	"studioctl/internal/studio"
	"studioctl/internal/transport"
)

// settleDelay gives a freshly launched studio time to begin initializing
// before the first dial; its channel does not exist immediately.
const settleDelay = time.Second

// Scope receives a handshaken, ready client. When it returns, the session
// is torn down regardless of outcome.
type Scope func(ctx context.Context, client *studio.Client) error

// StartOptions controls the start-new flow.
type StartOptions struct {
	// AutoShutdown asks the studio to exit after the scope completes.
	// Defaults on: the session owns the process it launched.
	AutoShutdown bool
	// WaitForReady blocks until the studio is idle before entering the scope.
	WaitForReady bool
	Minimized    bool
	// Timeout bounds the post-launch readiness wait (licensing included).
	Timeout time.Duration
	// Executable overrides config and installation lookup.
	Executable string
}

// AttachOptions controls the connect-to-existing flow.
type AttachOptions struct {
	// PID names the instance to attach to; procfind.UnspecifiedPID scans.
	PID int
	// AutoShutdown defaults off: the caller does not own a process it did
	// not start.
	AutoShutdown bool
	WaitForReady bool
	Timeout      time.Duration
}

// DefaultStartOptions returns start-new defaults drawn from config.
func DefaultStartOptions(cfg *config.Config) StartOptions {
	return StartOptions{
		AutoShutdown: true,
		WaitForReady: true,
		Minimized:    cfg.Studio.StartMinimized,
		Timeout:      time.Duration(cfg.Timeouts.LaunchSeconds) * time.Second,
	}
}

// DefaultAttachOptions returns connect-to-existing defaults drawn from config.
func DefaultAttachOptions(cfg *config.Config) AttachOptions {
	return AttachOptions{
		PID:          procfind.UnspecifiedPID,
		AutoShutdown: false,
		WaitForReady: true,
		Timeout:      time.Duration(cfg.Timeouts.AttachSeconds) * time.Second,
	}
}

// Runtime carries the collaborators of both session flows. Zero fields
// fall back to the real implementations; tests inject fakes.
type Runtime struct {
	Config  *config.Config
	Logger  *slog.Logger
	History *history.Store

	Enumerator     procfind.Enumerator
	FindExecutable func(install.Options) (string, error)
	Launch         func(executable string, args []string) (int, error)
	OpenChannel    func(ctx context.Context, pid int, timeout time.Duration) (studio.Channel, error)
	Clock          clock.Clock
}

// NewRuntime builds a runtime with production collaborators.
func NewRuntime(cfg *config.Config, logger *slog.Logger) *Runtime {
	return &Runtime{Config: cfg, Logger: logger}
}

// StartNew launches a fresh studio instance, connects, and runs fn inside
// the session scope.
func (r *Runtime) StartNew(ctx context.Context, opts StartOptions, fn Scope) error {
	findOpts := install.Options{
		Override:          firstNonEmpty(opts.Executable, r.Config.Studio.Executable),
		VersionHint:       r.Config.Studio.Version,
		PreferDevelopment: r.Config.Studio.PreferDevelopment,
	}
	executable, err := r.findExecutable()(findOpts)
	if err != nil {
		return err
	}

	args := []string{"-n", "-w"}
	if opts.Minimized {
		args = append(args, "-m")
	}
	pid, err := r.launch()(executable, args)
	if err != nil {
		return err
	}

	if err := r.settle(ctx); err != nil {
		return err
	}

	return r.runSession(ctx, "launch", pid, sessionParams{
		autoShutdown: opts.AutoShutdown,
		waitForReady: opts.WaitForReady,
		timeout:      opts.Timeout,
	}, fn)
}

// ConnectToExisting attaches to a running studio instance and runs fn
// inside the session scope.
func (r *Runtime) ConnectToExisting(ctx context.Context, opts AttachOptions, fn Scope) error {
	pid, err := procfind.Resolve(ctx, r.Enumerator, opts.PID)
	if err != nil {
		return err
	}

	return r.runSession(ctx, "attach", pid, sessionParams{
		autoShutdown: opts.AutoShutdown,
		waitForReady: opts.WaitForReady,
		timeout:      opts.Timeout,
	}, fn)
}

type sessionParams struct {
	autoShutdown bool
	waitForReady bool
	timeout      time.Duration
}

func (r *Runtime) runSession(ctx context.Context, mode string, pid int, params sessionParams, fn Scope) error {
	sessionID := uuid.NewString()
	logger := logging.NewComponentLogger(r.Logger, "session").With(
		logging.String(logging.FieldSessionID, sessionID),
		logging.Int(logging.FieldPID, pid),
	)

	r.recordBegin(ctx, logger, history.Record{ID: sessionID, Mode: mode, PID: pid})

	logger.Info("session starting", logging.Args(logging.String("mode", mode))...)
	err := r.execute(ctx, logger, pid, params, fn)

	status := history.StatusCompleted
	message := ""
	if err != nil {
		status = history.StatusFailed
		message = err.Error()
		logger.Error("session failed", logging.Args(logging.Error(err))...)
	} else {
		logger.Info("session completed")
	}
	r.recordFinish(logger, sessionID, status, message)

	return err
}

// execute opens the channel and runs handshake, readiness wait, scope, and
// optional shutdown. The deferred close runs exactly once on every path; a
// close failure never masks the original error.
func (r *Runtime) execute(ctx context.Context, logger *slog.Logger, pid int, params sessionParams, fn Scope) (err error) {
	ch, err := r.openChannel()(ctx, pid, params.timeout)
	if err != nil {
		return err
	}
	client := studio.NewClient(ch, logger)
	defer func() {
		closeErr := client.Close()
		if err == nil {
			err = closeErr
		}
	}()

	version, err := client.APIVersion(ctx)
	if err != nil {
		return err
	}
	if version != studio.SupportedAPIVersion {
		return fmt.Errorf("%w: studio reported %s, this controller requires %s",
			studio.ErrUnsupportedAPIVersion, version, studio.SupportedAPIVersion)
	}

	if params.waitForReady {
		if err := client.WaitForReady(ctx); err != nil {
			return err
		}
	}

	if err := fn(ctx, client); err != nil {
		return err
	}

	if params.autoShutdown {
		if err := client.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runtime) recordBegin(ctx context.Context, logger *slog.Logger, rec Record) {
	if r.History == nil {
		return
	}
	if err := r.History.Begin(ctx, rec); err != nil {
		logger.Warn("record session start", logging.Args(logging.Error(err))...)
	}
}

func (r *Runtime) recordFinish(logger *slog.Logger, id, status, message string) {
	if r.History == nil {
		return
	}
	// Teardown bookkeeping must survive a canceled scope context.
	if err := r.History.Finish(context.Background(), id, status, message); err != nil {
		logger.Warn("record session finish", logging.Args(logging.Error(err))...)
	}
}

// Record aliases the history record for collaborator signatures.
type Record = history.Record

func (r *Runtime) settle(ctx context.Context) error {
	timer := r.clock().Timer(settleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Runtime) findExecutable() func(install.Options) (string, error) {
	if r.FindExecutable != nil {
		return r.FindExecutable
	}
	return install.FindExecutable
}

func (r *Runtime) launch() func(string, []string) (int, error) {
	if r.Launch != nil {
		return r.Launch
	}
	return launchProcess
}

func (r *Runtime) openChannel() func(context.Context, int, time.Duration) (studio.Channel, error) {
	if r.OpenChannel != nil {
		return r.OpenChannel
	}
	return func(ctx context.Context, pid int, timeout time.Duration) (studio.Channel, error) {
		return transport.Open(ctx, pid, timeout, transport.Options{
			LockDir: r.Config.Paths.StateDir,
			Logger:  r.Logger,
		})
	}
}

func (r *Runtime) clock() clock.Clock {
	if r.Clock != nil {
		return r.Clock
	}
	return clock.New()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
