// Package gateway is the dispatch core: the name-indexed action
// registry and the single Execute entry point every caller goes
// through. Execute validates argument shape, sanitizes values, runs
// the authorization chain, isolates handler faults, and emits exactly
// one audit record per call.
package gateway

import (
	"context"

	"github.com/toolgate-dev/toolgate/internal/model"
)

// Handler runs one action. Blocking I/O is expected; handlers honor
// ctx for cancellation and may read the override signal from it.
// A returned error or a panic becomes a structured error result,
// never an escaped fault.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// ArgType is the declared shape of one argument.
type ArgType string

const (
	ArgString     ArgType = "string"
	ArgInt        ArgType = "int"
	ArgFloat      ArgType = "float"
	ArgBool       ArgType = "bool"
	ArgStringList ArgType = "string_list"
)

// ArgCheck routes a string argument to a sanitizer.
type ArgCheck string

const (
	// CheckNone: plain text scrubbing only.
	CheckNone ArgCheck = ""

	// CheckCommand: shell-command allow/deny rules.
	CheckCommand ArgCheck = "command"

	// CheckPath: canonicalization, traversal, and protected paths.
	// The canonical path replaces the argument value on success.
	CheckPath ArgCheck = "path"

	// CheckURL: scheme and internal-address rules.
	CheckURL ArgCheck = "url"
)

// ArgSpec declares one argument of an action: shape first, then which
// sanitizer applies, then whether its value names infrastructure that
// the protected-resource catalogue must clear.
type ArgSpec struct {
	Name     string
	Type     ArgType
	Required bool

	// Enum restricts a string argument to fixed values.
	Enum []string

	// Check selects the sanitizer for a string argument.
	Check ArgCheck

	// DenySecrets additionally refuses paths whose file name matches
	// the secret-file conventions. Set on read-capable path args.
	DenySecrets bool

	// Resource marks the argument as naming infrastructure of the
	// given kind; the dispatcher matches its value against the
	// protected-resource catalogue before tier rules run.
	Resource model.ResourceKind
}

// Action is one registered operation. Registered once at startup,
// immutable thereafter.
type Action struct {
	Name string
	Tier model.Tier

	// Doc is the one-line description used in capability listings.
	Doc string

	Args []ArgSpec

	// ResourceRefs statically names protected resources the action
	// always touches, independent of argument values.
	ResourceRefs []string

	Handler Handler
}

// Info is the introspection view of a registered action.
type Info struct {
	Name string     `json:"name"`
	Tier model.Tier `json:"tier"`
	Doc  string     `json:"doc,omitempty"`
}
