package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/toolgate-dev/toolgate/internal/model"
)

func noopHandler(context.Context, map[string]any) (any, error) {
	return nil, nil
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(Action{Name: "get_time", Tier: model.TierAuto, Handler: noopHandler}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := r.Register(Action{Name: "get_time", Tier: model.TierConfirm, Handler: noopHandler})
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate error, got: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		act  Action
	}{
		{"empty name", Action{Tier: model.TierAuto, Handler: noopHandler}},
		{"nil handler", Action{Name: "x", Tier: model.TierAuto}},
		{"invalid tier", Action{Name: "x", Tier: model.Tier(42), Handler: noopHandler}},
		{"duplicate arg", Action{Name: "x", Tier: model.TierAuto, Handler: noopHandler,
			Args: []ArgSpec{{Name: "a"}, {Name: "a"}}}},
		{"unnamed arg", Action{Name: "x", Tier: model.TierAuto, Handler: noopHandler,
			Args: []ArgSpec{{Type: ArgString}}}},
	}

	for _, tt := range tests {
		if err := r.Register(tt.act); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestMustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Action{Name: "get_time", Tier: model.TierAuto, Handler: noopHandler})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate MustRegister")
		}
	}()
	r.MustRegister(Action{Name: "get_time", Tier: model.TierAuto, Handler: noopHandler})
}

func TestTierOfUnknown(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Action{Name: "get_time", Tier: model.TierAuto, Handler: noopHandler})

	tier, ok := r.TierOf("get_time")
	if !ok || tier != model.TierAuto {
		t.Errorf("expected (auto, true), got (%s, %v)", tier, ok)
	}

	tier, ok = r.TierOf("nonsense")
	if ok || tier != model.TierBlocked {
		t.Errorf("expected (blocked, false) for unknown, got (%s, %v)", tier, ok)
	}
}

func TestActionsSorted(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Action{Name: "zebra", Tier: model.TierAuto, Handler: noopHandler})
	r.MustRegister(Action{Name: "alpha", Tier: model.TierBlocked, Handler: noopHandler, Doc: "first"})

	infos := r.Actions()
	if len(infos) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(infos))
	}
	if infos[0].Name != "alpha" || infos[1].Name != "zebra" {
		t.Errorf("expected sorted order, got %s, %s", infos[0].Name, infos[1].Name)
	}
	if infos[0].Tier != model.TierBlocked || infos[0].Doc != "first" {
		t.Errorf("info fields wrong: %+v", infos[0])
	}
}

func TestApplyTierOverrides(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Action{Name: "install_package", Tier: model.TierConfirm, Handler: noopHandler})

	// Raising is fine.
	err := r.ApplyTierOverrides(map[string]model.Tier{"install_package": model.TierKeywordElevated})
	if err != nil {
		t.Fatalf("raise: %v", err)
	}
	if tier, _ := r.TierOf("install_package"); tier != model.TierKeywordElevated {
		t.Errorf("expected keyword_elevated after override, got %s", tier)
	}

	// Lowering is refused.
	err = r.ApplyTierOverrides(map[string]model.Tier{"install_package": model.TierAuto})
	if err == nil {
		t.Error("expected error when lowering a tier")
	}

	// Unknown action is refused.
	err = r.ApplyTierOverrides(map[string]model.Tier{"ghost": model.TierBlocked})
	if err == nil {
		t.Error("expected error for unknown action")
	}
}
