package gateway

import (
	"fmt"
	"sort"
	"sync"

	"github.com/toolgate-dev/toolgate/internal/model"
	"github.com/toolgate-dev/toolgate/internal/policy"
)

// Registry is the name-indexed action table. Registration happens at
// startup, before any dispatch; afterwards the table is read-only and
// safe for concurrent lookups.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]*Action
	table   *policy.Table
}

// NewRegistry returns an empty action registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]*Action),
		table:   policy.NewTable(),
	}
}

// Register adds an action. A duplicate name is an error: two handlers
// under one name means one of them silently never runs, which is a
// startup bug, not a runtime condition.
func (r *Registry) Register(a Action) error {
	if a.Name == "" {
		return fmt.Errorf("register: action name is required")
	}
	if a.Handler == nil {
		return fmt.Errorf("register %s: handler is required", a.Name)
	}
	if a.Tier < model.TierAuto || a.Tier > model.TierBlocked {
		return fmt.Errorf("register %s: invalid tier %d", a.Name, int(a.Tier))
	}
	seen := make(map[string]bool, len(a.Args))
	for _, spec := range a.Args {
		if spec.Name == "" {
			return fmt.Errorf("register %s: argument with empty name", a.Name)
		}
		if seen[spec.Name] {
			return fmt.Errorf("register %s: duplicate argument %q", a.Name, spec.Name)
		}
		seen[spec.Name] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.actions[a.Name]; exists {
		return fmt.Errorf("register: duplicate action %q", a.Name)
	}
	copied := a
	r.actions[a.Name] = &copied
	r.table.Set(a.Name, a.Tier)
	return nil
}

// MustRegister panics on registration failure. Collaborator modules
// use it in their wiring, where a bad registration should stop the
// process before it serves anything.
func (r *Registry) MustRegister(a Action) {
	if err := r.Register(a); err != nil {
		panic(err)
	}
}

// Get looks up an action by name.
func (r *Registry) Get(name string) (*Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// TierOf resolves an action name to its tier. Unknown names land on
// the most restrictive tier.
func (r *Registry) TierOf(name string) (model.Tier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.TierOf(name)
}

// Actions returns the capability list, sorted by name. Used for
// introspection surfaces such as a system-prompt capability block.
func (r *Registry) Actions() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.actions))
	for _, a := range r.actions {
		infos = append(infos, Info{Name: a.Name, Tier: a.Tier, Doc: a.Doc})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// ApplyTierOverrides raises action tiers from config. Lowering is
// refused: a config file must not be able to quietly soften a tier a
// collaborator registered.
func (r *Registry) ApplyTierOverrides(overrides map[string]model.Tier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, tier := range overrides {
		a, ok := r.actions[name]
		if !ok {
			return fmt.Errorf("tier override for unknown action %q", name)
		}
		if tier < a.Tier {
			return fmt.Errorf("tier override for %s lowers %s to %s", name, a.Tier, tier)
		}
		a.Tier = tier
		r.table.Set(name, tier)
	}
	return nil
}
