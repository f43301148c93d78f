package model

import "strings"

// Source identifies which kind of caller initiated a dispatch.
// Descriptive only: it never influences authorization.
type Source string

const (
	SourceLLM     Source = "llm"
	SourceMonitor Source = "monitor"
	SourceUser    Source = "user"
	SourceAPI     Source = "api"
)

// ParseSource maps a source name to a Source, defaulting to llm.
func ParseSource(s string) Source {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceMonitor:
		return SourceMonitor
	case SourceUser:
		return SourceUser
	case SourceAPI:
		return SourceAPI
	default:
		return SourceLLM
	}
}

// Outcome is the terminal state of one dispatch attempt.
type Outcome string

const (
	// OutcomeOK means the handler ran and returned a value.
	OutcomeOK Outcome = "ok"

	// OutcomeBlocked means sanitization or policy refused the call
	// before the handler ran.
	OutcomeBlocked Outcome = "blocked"

	// OutcomeError means the call failed: unknown action, malformed
	// arguments, or a handler fault.
	OutcomeError Outcome = "error"
)

// FaultKind tags error outcomes so callers never have to parse message
// text to learn why an action did not run.
type FaultKind string

const (
	// FaultNone is the zero value, used on ok and blocked results.
	FaultNone FaultKind = ""

	// FaultUnknownAction: no handler registered under the requested name.
	FaultUnknownAction FaultKind = "unknown_action"

	// FaultSchema: arguments failed the action's declared schema.
	FaultSchema FaultKind = "schema"

	// FaultHandler: the handler returned an error or panicked.
	FaultHandler FaultKind = "handler"
)

// SafetyDecision is the output of the authorization chain. Computed
// fresh on every call and never persisted except as audit text.
type SafetyDecision struct {
	Allowed bool   `json:"allowed"`
	Tier    Tier   `json:"tier"`
	Reason  string `json:"reason,omitempty"`
}

// Allow returns an allowing decision at the given tier.
func Allow(tier Tier) SafetyDecision {
	return SafetyDecision{Allowed: true, Tier: tier}
}

// Deny returns a blocking decision with a reason.
func Deny(tier Tier, reason string) SafetyDecision {
	return SafetyDecision{Allowed: false, Tier: tier, Reason: reason}
}

// ResourceKind says what a protected-resource identifier refers to.
type ResourceKind string

const (
	KindNode   ResourceKind = "node"
	KindVMID   ResourceKind = "vmid"
	KindDaemon ResourceKind = "daemon"
	KindPath   ResourceKind = "path"
)

// ProtectedResource is one entry in the static protection list: an
// identifier whose disruption could take down the automation stack
// itself. Dependents names what goes down with it, for refusal text.
type ProtectedResource struct {
	Identifier string       `yaml:"identifier" json:"identifier"`
	Kind       ResourceKind `yaml:"kind" json:"kind"`
	Dependents []string     `yaml:"dependents,omitempty" json:"dependents,omitempty"`
}
