package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestServerHandlesRequest(t *testing.T) {
	input := "{\"jsonrpc\":\"2.0\",\"id\":1,\"method\":\"Ping\",\"api_version\":\"1\"}\n"
	reader := strings.NewReader(input)
	var output bytes.Buffer
	server := NewServer("1", reader, &output, nil)
	server.Register("Ping", func(ctx context.Context, params json.RawMessage) (any, *Error) {
		return map[string]any{"pong": true}, nil
	})

	if err := server.Serve(context.Background()); err != nil {
		t.Fatalf("serve: %v", err)
	}
	respLine := strings.TrimSpace(output.String())
	if respLine == "" {
		t.Fatalf("expected response")
	}
	var resp Response
	if err := json.Unmarshal([]byte(respLine), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	if result["pong"] != true {
		t.Fatalf("expected pong true")
	}
}

func TestServerPreservesRequestOrder(t *testing.T) {
	input := "{\"jsonrpc\":\"2.0\",\"id\":1,\"method\":\"Echo\",\"params\":{\"n\":1}}\n" +
		"{\"jsonrpc\":\"2.0\",\"id\":2,\"method\":\"Echo\",\"params\":{\"n\":2}}\n"
	reader := strings.NewReader(input)
	var output bytes.Buffer
	server := NewServer("1", reader, &output, nil)
	server.Register("Echo", func(ctx context.Context, params json.RawMessage) (any, *Error) {
		var p struct {
			N int `json:"n"`
		}
		_ = json.Unmarshal(params, &p)
		return map[string]any{"n": p.N}, nil
	})

	if err := server.Serve(context.Background()); err != nil {
		t.Fatalf("serve: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(lines))
	}
	for i, line := range lines {
		var resp Response
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("unmarshal response %d: %v", i, err)
		}
		if string(resp.ID) != string(rune('1'+i)) {
			t.Fatalf("response %d has id %s", i, resp.ID)
		}
	}
}

func TestServerRejectsUnknownMethod(t *testing.T) {
	input := "{\"jsonrpc\":\"2.0\",\"id\":1,\"method\":\"Nope\"}\n"
	var output bytes.Buffer
	server := NewServer("1", strings.NewReader(input), &output, nil)
	if err := server.Serve(context.Background()); err != nil {
		t.Fatalf("serve: %v", err)
	}
	var resp Response
	if err := json.Unmarshal([]byte(strings.TrimSpace(output.String())), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error == nil || !strings.Contains(resp.Error.Message, "method not found") {
		t.Fatalf("expected method-not-found error, got %+v", resp.Error)
	}
}
