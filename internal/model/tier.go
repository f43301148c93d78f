package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tier classifies an action's risk. Higher tier = more restricted.
// The order is load-bearing: authorization compares tiers numerically.
type Tier int

const (
	// TierAuto executes without any confirmation.
	TierAuto Tier = iota

	// TierConfirm requires one explicit caller confirmation.
	TierConfirm

	// TierDoubleConfirm requires a second, distinct confirmation round.
	// The gateway checks the same Confirmed flag as TierConfirm; running
	// the second prompt before setting it is the caller layer's duty.
	TierDoubleConfirm

	// TierKeywordElevated requires an out-of-band keyword approval.
	// Plain confirmation is never sufficient.
	TierKeywordElevated

	// TierBlocked never executes, regardless of any flag combination.
	TierBlocked
)

// String returns the canonical lower-case tier name.
func (t Tier) String() string {
	switch t {
	case TierAuto:
		return "auto"
	case TierConfirm:
		return "confirm"
	case TierDoubleConfirm:
		return "double_confirm"
	case TierKeywordElevated:
		return "keyword_elevated"
	case TierBlocked:
		return "blocked"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseTier maps a tier name to its Tier. Unknown names resolve to
// TierBlocked: a name nobody recognizes must land on the most
// restrictive rung.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return TierAuto
	case "confirm":
		return TierConfirm
	case "double_confirm":
		return TierDoubleConfirm
	case "keyword_elevated":
		return TierKeywordElevated
	default:
		return TierBlocked
	}
}

// UnmarshalYAML parses a tier name from config. Unknown names fail loudly
// instead of silently blocking: a typo in a tier override is a config bug.
func (t *Tier) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "confirm", "double_confirm", "keyword_elevated", "blocked":
		*t = ParseTier(s)
		return nil
	default:
		return fmt.Errorf("unknown tier %q", s)
	}
}

// MarshalYAML renders the canonical tier name.
func (t Tier) MarshalYAML() (any, error) {
	return t.String(), nil
}

// MarshalJSON renders the canonical tier name, so audit records and
// API responses carry "double_confirm" rather than a bare integer.
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON mirrors UnmarshalYAML: unknown names are an error.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "confirm", "double_confirm", "keyword_elevated", "blocked":
		*t = ParseTier(s)
		return nil
	default:
		return fmt.Errorf("unknown tier %q", s)
	}
}
