package policy

import (
	"sort"

	"github.com/toolgate-dev/toolgate/internal/model"
)

// Table maps action names to tiers. Populated at startup from action
// registration plus config overrides; read-only afterwards.
type Table struct {
	tiers map[string]model.Tier
}

// NewTable returns an empty tier table.
func NewTable() *Table {
	return &Table{tiers: make(map[string]model.Tier)}
}

// Set assigns a tier to an action name, replacing any earlier value.
func (t *Table) Set(name string, tier model.Tier) {
	t.tiers[name] = tier
}

// TierOf looks up the tier for an action name. Unknown names resolve
// to the most restrictive tier with ok=false.
func (t *Table) TierOf(name string) (model.Tier, bool) {
	tier, ok := t.tiers[name]
	if !ok {
		return model.TierBlocked, false
	}
	return tier, true
}

// Names returns all known action names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.tiers))
	for name := range t.tiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
