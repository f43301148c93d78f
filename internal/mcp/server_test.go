package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/toolgate-dev/toolgate/internal/gateway"
	"github.com/toolgate-dev/toolgate/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := gateway.NewRegistry()
	reg.MustRegister(gateway.Action{
		Name: "ping",
		Tier: model.TierAuto,
		Handler: func(context.Context, map[string]any) (any, error) {
			return "pong", nil
		},
	})
	reg.MustRegister(gateway.Action{
		Name: "restart_service",
		Tier: model.TierConfirm,
		Args: []gateway.ArgSpec{{Name: "service", Type: gateway.ArgString, Required: true}},
		Handler: func(context.Context, map[string]any) (any, error) {
			return "restarted", nil
		},
	})
	gw := gateway.New(gateway.Options{Registry: reg})
	return New(gw, "test", zerolog.Nop())
}

func TestHandleExecuteOK(t *testing.T) {
	s := newTestServer(t)

	result, out, err := s.handleExecute(context.Background(), nil, ExecuteInput{Action: "ping"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatal("expected non-error result for ping")
	}
	if out.Outcome != "ok" || out.Value != "pong" {
		t.Errorf("expected ok/pong, got %s/%v", out.Outcome, out.Value)
	}
	if !strings.HasPrefix(out.CallID, "call_") {
		t.Errorf("expected call id, got %q", out.CallID)
	}
}

func TestHandleExecuteBlocked(t *testing.T) {
	s := newTestServer(t)

	result, out, err := s.handleExecute(context.Background(), nil, ExecuteInput{
		Action: "restart_service",
		Args:   map[string]any{"service": "nginx"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for unconfirmed action")
	}
	if out.Outcome != "blocked" {
		t.Errorf("expected blocked, got %s", out.Outcome)
	}
	if !strings.Contains(out.Reason, "confirmation required") {
		t.Errorf("expected confirmation reason, got %q", out.Reason)
	}
	if out.Tier != "confirm" {
		t.Errorf("expected confirm tier, got %q", out.Tier)
	}
}

func TestHandleExecuteUnknown(t *testing.T) {
	s := newTestServer(t)

	result, out, err := s.handleExecute(context.Background(), nil, ExecuteInput{Action: "ghost"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected error result for unknown action")
	}
	if out.Fault != "unknown_action" {
		t.Errorf("expected unknown_action fault, got %q", out.Fault)
	}
}

func TestHandleCheck(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.handleCheck(context.Background(), nil, CheckInput{Action: "ping"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Allowed {
		t.Errorf("expected ping allowed, got %+v", out)
	}

	_, out, err = s.handleCheck(context.Background(), nil, CheckInput{
		Action: "restart_service",
		Args:   map[string]any{"service": "nginx"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Allowed || !strings.Contains(out.Reason, "confirmation required") {
		t.Errorf("expected confirmation denial, got %+v", out)
	}
}

func TestHandleActions(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.handleActions(context.Background(), nil, ActionsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(out.Actions))
	}
	if out.Actions[0].Name != "ping" || out.Actions[0].Tier != "auto" {
		t.Errorf("unexpected first action: %+v", out.Actions[0])
	}
	if out.Actions[1].Name != "restart_service" || out.Actions[1].Tier != "confirm" {
		t.Errorf("unexpected second action: %+v", out.Actions[1])
	}
}
