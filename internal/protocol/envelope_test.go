package protocol

import (
	"strings"
	"testing"
)

func TestEncodeRequestNoArgs(t *testing.T) {
	frame, err := EncodeRequest("GetModules", nil)
	if err != nil {
		t.Fatalf("EncodeRequest: %v", err)
	}
	want := `{"method":"GetModules","args":[]}` + "\n"
	if string(frame) != want {
		t.Fatalf("frame = %q, want %q", frame, want)
	}
}

func TestEncodeRequestPreservesArgOrder(t *testing.T) {
	frame, err := EncodeRequest("GetValue", []any{"mod", "", "cat", "prop", false})
	if err != nil {
		t.Fatalf("EncodeRequest: %v", err)
	}
	want := `{"method":"GetValue","args":["mod","","cat","prop",false]}` + "\n"
	if string(frame) != want {
		t.Fatalf("frame = %q, want %q", frame, want)
	}
}

func TestDecodeResponseSuccess(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"Success":true,"Value":["A","B"]}`))
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success")
	}
	if string(resp.Value) != `["A","B"]` {
		t.Fatalf("value = %s", resp.Value)
	}
}

func TestDecodeResponseError(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"Success":false,"Error":"bad module"}`))
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if resp.Success || resp.Error != "bad module" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestDecodeResponseMalformed(t *testing.T) {
	_, err := DecodeResponse([]byte(`{"Success":`))
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
