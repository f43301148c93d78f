package toolgate

import (
	"context"
	"fmt"
	"time"

	"github.com/toolgate-dev/toolgate/internal/gateway"
	"github.com/toolgate-dev/toolgate/internal/model"
)

// Tier is the risk classification of an action.
type Tier string

const (
	TierAuto            Tier = "auto"
	TierConfirm         Tier = "confirm"
	TierDoubleConfirm   Tier = "double_confirm"
	TierKeywordElevated Tier = "keyword_elevated"
	TierBlocked         Tier = "blocked"
)

// Outcome tags a dispatch result.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeBlocked Outcome = "blocked"
	OutcomeError   Outcome = "error"
)

// Handler executes one action. Arguments arrive validated, scrubbed,
// and canonicalized.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// ArgType declares an argument's shape.
type ArgType string

const (
	ArgString     ArgType = "string"
	ArgInt        ArgType = "int"
	ArgFloat      ArgType = "float"
	ArgBool       ArgType = "bool"
	ArgStringList ArgType = "string_list"
)

// Check names the sanitizer applied to a string argument.
type Check string

const (
	CheckNone    Check = ""
	CheckCommand Check = "command"
	CheckPath    Check = "path"
	CheckURL     Check = "url"
)

// ResourceKind classifies a protected resource.
type ResourceKind string

const (
	KindNode   ResourceKind = "node"
	KindVMID   ResourceKind = "vmid"
	KindDaemon ResourceKind = "daemon"
	KindPath   ResourceKind = "path"
)

// ArgSpec declares one argument of an action. An empty Type means
// string.
type ArgSpec struct {
	Name        string
	Type        ArgType
	Required    bool
	Enum        []string
	Check       Check
	DenySecrets bool
	Resource    ResourceKind
}

// Action declares a dispatchable tool.
type Action struct {
	Name string
	Tier Tier
	Doc  string
	Args []ArgSpec

	// ResourceRefs statically names protected resources the action
	// always touches, independent of argument values.
	ResourceRefs []string

	Handler Handler
}

// Info describes a registered action.
type Info struct {
	Name string
	Tier Tier
	Doc  string
}

// Decision is a dry-run outcome.
type Decision struct {
	Allowed bool
	Tier    Tier
	Reason  string
}

// Result is the full tagged outcome of one dispatch.
type Result struct {
	Action   string
	CallID   string
	Tier     Tier
	Outcome  Outcome
	Value    any
	Reason   string
	Fault    string
	Err      string
	Duration time.Duration
}

// BlockedError reports a sanitization or authorization denial.
type BlockedError struct {
	Action string
	Tier   Tier
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("toolgate blocked %s (tier %s): %s", e.Action, e.Tier, e.Reason)
}

// FaultError reports an unknown action, a schema failure, or a
// handler fault.
type FaultError struct {
	Action string
	Fault  string
	Msg    string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("toolgate %s fault on %s: %s", e.Fault, e.Action, e.Msg)
}

func toInternalAction(a Action) gateway.Action {
	specs := make([]gateway.ArgSpec, len(a.Args))
	for i, s := range a.Args {
		specs[i] = gateway.ArgSpec{
			Name:        s.Name,
			Type:        gateway.ArgType(s.Type),
			Required:    s.Required,
			Enum:        s.Enum,
			Check:       gateway.ArgCheck(s.Check),
			DenySecrets: s.DenySecrets,
			Resource:    model.ResourceKind(s.Resource),
		}
	}
	return gateway.Action{
		Name:         a.Name,
		Tier:         model.ParseTier(string(a.Tier)),
		Doc:          a.Doc,
		Args:         specs,
		ResourceRefs: a.ResourceRefs,
		Handler:      gateway.Handler(a.Handler),
	}
}

func toResult(r gateway.Result) Result {
	return Result{
		Action:   r.Action,
		CallID:   r.CallID,
		Tier:     Tier(r.Tier.String()),
		Outcome:  Outcome(r.Outcome),
		Value:    r.Value,
		Reason:   r.Reason,
		Fault:    string(r.Fault),
		Err:      r.Err,
		Duration: r.Duration,
	}
}
