// Package policy is the tier classifier: it maps action names to risk
// tiers and decides, given the confirmation, override, and
// keyword-approval flags, whether one specific invocation may run.
// Everything here is pure; the dispatcher resolves arguments to
// protected resources before calling in.
package policy

import (
	"github.com/toolgate-dev/toolgate/internal/model"
	"github.com/toolgate-dev/toolgate/internal/resource"
)

// Input describes one invocation to authorize. Targets carries the
// protected resources the dispatcher resolved from the arguments and
// the action's static references.
type Input struct {
	Action          string
	Known           bool
	Tier            model.Tier
	Targets         []model.ProtectedResource
	Confirmed       bool
	Override        bool
	KeywordApproved bool
}

// Check runs the authorization chain for one invocation.
//
// Rule order (must not be changed):
//  1. Unknown action — blocked.
//  2. Tier blocked — denied unconditionally; no flag combination
//     un-blocks it.
//  3. Protected resource — denied before any tier rule, naming the
//     resource, so self-disrupting calls never reach rules 4-6.
//  4. Tier auto — allowed.
//  5. Tier confirm / double_confirm — allowed only when confirmed.
//  6. Tier keyword_elevated — allowed only with keyword approval;
//     confirmation and override do not substitute.
func Check(in Input) model.SafetyDecision {
	if !in.Known {
		return model.Deny(model.TierBlocked, "unknown action: "+in.Action)
	}

	if in.Tier == model.TierBlocked {
		return model.Deny(model.TierBlocked, "action "+in.Action+" is permanently blocked")
	}

	if len(in.Targets) > 0 {
		return model.Deny(in.Tier, "protected resource: "+resource.Describe(in.Targets[0]))
	}

	switch in.Tier {
	case model.TierAuto:
		return model.Allow(in.Tier)

	case model.TierConfirm:
		if in.Confirmed {
			return model.Allow(in.Tier)
		}
		return model.Deny(in.Tier, "confirmation required for "+in.Action)

	case model.TierDoubleConfirm:
		if in.Confirmed {
			return model.Allow(in.Tier)
		}
		return model.Deny(in.Tier, "double confirmation required for "+in.Action)

	case model.TierKeywordElevated:
		if in.KeywordApproved {
			return model.Allow(in.Tier)
		}
		return model.Deny(in.Tier, "keyword approval required for "+in.Action)
	}

	// Unreachable for valid tiers; treat anything else as blocked.
	return model.Deny(model.TierBlocked, "unrecognized tier for "+in.Action)
}
