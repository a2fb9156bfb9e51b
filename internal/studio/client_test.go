package studio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

// scriptedChannel replies to request N with the Nth queued response, or
// echoes the request method when the queue is empty.
type scriptedChannel struct {
	responses [][]byte
	sent      [][]byte
	closed    int
	echo      bool
}

func (s *scriptedChannel) Send(frame []byte) error {
	copied := make([]byte, len(frame))
	copy(copied, frame)
	s.sent = append(s.sent, copied)
	return nil
}

func (s *scriptedChannel) Recv() ([]byte, error) {
	if s.echo {
		var req struct {
			Method string `json:"method"`
		}
		if err := json.Unmarshal(s.sent[len(s.sent)-1], &req); err != nil {
			return nil, err
		}
		return []byte(fmt.Sprintf(`{"Success":true,"Value":%q}`, req.Method)), nil
	}
	if len(s.responses) == 0 {
		return nil, errors.New("no scripted response")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedChannel) Close() error {
	s.closed++
	return nil
}

func (s *scriptedChannel) queue(responses ...string) {
	for _, r := range responses {
		s.responses = append(s.responses, []byte(r))
	}
}

func TestCallOrderingStrict(t *testing.T) {
	ch := &scriptedChannel{echo: true}
	client := NewClient(ch, nil)

	methods := []string{"Version", "WaitForReady", "GetModules", "Suspend", "Resume"}
	for _, method := range methods {
		value, err := client.Call(context.Background(), method)
		if err != nil {
			t.Fatalf("Call(%s): %v", method, err)
		}
		var got string
		if err := json.Unmarshal(value, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != method {
			t.Fatalf("response for %s answered %s: ordering broken", method, got)
		}
	}
}

func TestCallUnwrapsSuccess(t *testing.T) {
	ch := &scriptedChannel{}
	ch.queue(`{"Success":true,"Value":["A","B"]}`)
	client := NewClient(ch, nil)

	modules, err := client.Modules(context.Background())
	if err != nil {
		t.Fatalf("Modules: %v", err)
	}
	if len(modules) != 2 || modules[0] != "A" || modules[1] != "B" {
		t.Fatalf("modules = %v", modules)
	}

	want := `{"method":"GetModules","args":[]}` + "\n"
	if string(ch.sent[0]) != want {
		t.Fatalf("sent = %q, want %q", ch.sent[0], want)
	}
}

func TestCallUnwrapsRemoteError(t *testing.T) {
	ch := &scriptedChannel{}
	ch.queue(`{"Success":false,"Error":"bad module"}`)
	client := NewClient(ch, nil)

	_, err := client.Modules(context.Background())
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if remote.Message != "bad module" {
		t.Fatalf("message = %q, want verbatim %q", remote.Message, "bad module")
	}
}

func TestCallMalformedResponse(t *testing.T) {
	ch := &scriptedChannel{}
	ch.queue(`{"Success":`)
	client := NewClient(ch, nil)

	if _, err := client.Call(context.Background(), "Version"); err == nil {
		t.Fatal("expected decode error for malformed response")
	}
}

func TestCallCanceledContextFailsFast(t *testing.T) {
	ch := &scriptedChannel{}
	client := NewClient(ch, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Call(ctx, "Version"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(ch.sent) != 0 {
		t.Fatal("no request should be written after cancellation")
	}
}

func TestGetValueArgShape(t *testing.T) {
	ch := &scriptedChannel{}
	ch.queue(`{"Success":true,"Value":42}`, `{"Success":true,"Value":"x"}`)
	client := NewClient(ch, nil)

	if _, err := client.ModuleValue(context.Background(), "krig", "Output", "Max"); err != nil {
		t.Fatalf("ModuleValue: %v", err)
	}
	want := `{"method":"GetValue","args":["krig","","Output","Max",false]}` + "\n"
	if string(ch.sent[0]) != want {
		t.Fatalf("sent = %q, want %q", ch.sent[0], want)
	}

	if _, err := client.PortValueExtended(context.Background(), "krig", "Out", "Output", "Max"); err != nil {
		t.Fatalf("PortValueExtended: %v", err)
	}
	want = `{"method":"GetValue","args":["krig","Out","Output","Max",true]}` + "\n"
	if string(ch.sent[1]) != want {
		t.Fatalf("sent = %q, want %q", ch.sent[1], want)
	}
}

func TestSetValueInterpolatedEncodesMethod(t *testing.T) {
	ch := &scriptedChannel{}
	ch.queue(`{"Success":true}`)
	client := NewClient(ch, nil)

	err := client.SetModuleValueInterpolated(context.Background(), "m", "Params", "Level", 0.0, 10.0, 50.0, InterpolationCosine)
	if err != nil {
		t.Fatalf("SetModuleValueInterpolated: %v", err)
	}
	want := `{"method":"SetValueInterpolated","args":["m","","Params","Level",0,10,50,8]}` + "\n"
	if string(ch.sent[0]) != want {
		t.Fatalf("sent = %q, want %q", ch.sent[0], want)
	}
}

func TestModulePositionDecodes(t *testing.T) {
	ch := &scriptedChannel{}
	ch.queue(`{"Success":true,"Value":{"X":120,"Y":48}}`)
	client := NewClient(ch, nil)

	x, y, err := client.ModulePosition(context.Background(), "krig")
	if err != nil {
		t.Fatalf("ModulePosition: %v", err)
	}
	if x != 120 || y != 48 {
		t.Fatalf("position = (%d, %d), want (120, 48)", x, y)
	}
}

func TestInstanceModuleReturnsAssignedName(t *testing.T) {
	ch := &scriptedChannel{}
	ch.queue(`{"Success":true,"Value":"krig_2"}`)
	client := NewClient(ch, nil)

	name, err := client.InstanceModule(context.Background(), "krig", "krig", 10, 20)
	if err != nil {
		t.Fatalf("InstanceModule: %v", err)
	}
	if name != "krig_2" {
		t.Fatalf("name = %q, want krig_2", name)
	}
}

func TestCheckCancel(t *testing.T) {
	ch := &scriptedChannel{}
	ch.queue(`{"Success":true,"Value":false}`, `{"Success":true,"Value":true}`)
	client := NewClient(ch, nil)

	if err := client.CheckCancel(context.Background()); err != nil {
		t.Fatalf("CheckCancel without pending cancel: %v", err)
	}
	if err := client.CheckCancel(context.Background()); !errors.Is(err, ErrCanceledByUser) {
		t.Fatalf("err = %v, want ErrCanceledByUser", err)
	}
}

func TestParseAPIVersion(t *testing.T) {
	cases := []struct {
		raw     string
		want    APIVersion
		wantErr bool
	}{
		{raw: "1.0", want: APIVersion{1, 0}},
		{raw: "2.0", want: APIVersion{2, 0}},
		{raw: "1.5", want: APIVersion{1, 5}},
		{raw: "1", want: APIVersion{1, 0}},
		// json.Number also accepts the quoted form.
		{raw: `"1.0"`, want: APIVersion{1, 0}},
		{raw: "true", wantErr: true},
		{raw: `"one"`, wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseAPIVersion(json.RawMessage(tc.raw))
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseAPIVersion(%s): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAPIVersion(%s): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAPIVersion(%s) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestAPIVersionHandshakeValue(t *testing.T) {
	ch := &scriptedChannel{}
	ch.queue(`{"Success":true,"Value":1.0}`)
	client := NewClient(ch, nil)

	version, err := client.APIVersion(context.Background())
	if err != nil {
		t.Fatalf("APIVersion: %v", err)
	}
	if version != SupportedAPIVersion {
		t.Fatalf("version = %v, want %v", version, SupportedAPIVersion)
	}
}
