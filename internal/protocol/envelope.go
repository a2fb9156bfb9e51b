// Package protocol defines the request/response envelopes exchanged with a
// Volumetric Studio instance.
//
// Every exchange is one newline-terminated UTF-8 JSON frame in each
// direction: `{"method": ..., "args": [...]}` out, `{"Success": ...,
// "Value"/"Error": ...}` back. The asymmetric field casing is fixed by the
// studio side of the protocol.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Request is the outbound call envelope.
type Request struct {
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// Response is the inbound result envelope.
type Response struct {
	Success bool            `json:"Success"`
	Value   json.RawMessage `json:"Value,omitempty"`
	Error   string          `json:"Error,omitempty"`
}

// EncodeRequest serializes a call into a single newline-terminated frame.
func EncodeRequest(method string, args []any) ([]byte, error) {
	if args == nil {
		// The studio rejects `"args": null`.
		args = []any{}
	}
	frame, err := json.Marshal(Request{Method: method, Args: args})
	if err != nil {
		return nil, fmt.Errorf("encode request %q: %w", method, err)
	}
	return append(frame, '\n'), nil
}

// DecodeResponse parses a single response frame.
func DecodeResponse(frame []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(frame, &resp); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}
