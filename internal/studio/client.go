// Package studio implements the RPC session against a connected Volumetric
// Studio instance: envelope exchange, result unwrapping, and the typed
// convenience surface over the raw method set.
package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"studioctl/internal/logging"
	"studioctl/internal/protocol"
)

// Channel is the message transport a client drives. Implemented by
// transport.Channel; tests substitute scripted fakes.
type Channel interface {
	Send(frame []byte) error
	Recv() ([]byte, error)
	Close() error
}

// Client executes calls against one channel. The protocol is strictly
// synchronous: one request is in flight at a time, and response N always
// answers request N. A client must not be shared across goroutines.
type Client struct {
	ch     Channel
	logger *slog.Logger

	// mu serializes the send/receive pair so a misbehaving caller cannot
	// interleave two exchanges on the wire.
	mu sync.Mutex
}

// NewClient wraps a ready channel.
func NewClient(ch Channel, logger *slog.Logger) *Client {
	return &Client{
		ch:     ch,
		logger: logging.NewComponentLogger(logger, "studio"),
	}
}

// Call sends one request and blocks until its response arrives. There is no
// per-call timeout: once connected, the studio is trusted to answer. The
// context is only consulted before the request is written.
func (c *Client) Call(ctx context.Context, method string, args ...any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame, err := protocol.EncodeRequest(method, args)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("call", logging.Args(logging.String(logging.FieldMethod, method))...)
	if err := c.ch.Send(frame); err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	reply, err := c.ch.Recv()
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	resp, err := protocol.DecodeResponse(reply)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	if !resp.Success {
		return nil, &RemoteError{Message: resp.Error}
	}
	return resp.Value, nil
}

// Close releases the underlying channel.
func (c *Client) Close() error {
	return c.ch.Close()
}

func (c *Client) callInto(ctx context.Context, dst any, method string, args ...any) error {
	value, err := c.Call(ctx, method, args...)
	if err != nil {
		return err
	}
	if dst == nil || len(value) == 0 {
		return nil
	}
	if err := json.Unmarshal(value, dst); err != nil {
		return fmt.Errorf("call %s: decode result: %w", method, err)
	}
	return nil
}
