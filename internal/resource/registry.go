// Package resource holds the static catalogue of protected
// infrastructure: nodes, VM/container ids, daemons, and filesystem
// subtrees whose disruption would take the automation stack itself
// down. Loaded once at startup, immutable afterwards.
package resource

import (
	"strings"

	"github.com/toolgate-dev/toolgate/internal/model"
)

// Registry answers "is this identifier protected" lookups. Node,
// vmid, and daemon identifiers match exactly (case-insensitive);
// path entries protect their whole subtree.
type Registry struct {
	exact map[model.ResourceKind]map[string]model.ProtectedResource
	paths []model.ProtectedResource
	all   []model.ProtectedResource
}

// New builds a Registry from a config-loaded resource list.
func New(resources []model.ProtectedResource) *Registry {
	r := &Registry{
		exact: make(map[model.ResourceKind]map[string]model.ProtectedResource),
	}
	for _, res := range resources {
		res.Identifier = strings.TrimSpace(res.Identifier)
		if res.Identifier == "" {
			continue
		}
		r.all = append(r.all, res)

		if res.Kind == model.KindPath {
			r.paths = append(r.paths, res)
			continue
		}
		byID := r.exact[res.Kind]
		if byID == nil {
			byID = make(map[string]model.ProtectedResource)
			r.exact[res.Kind] = byID
		}
		byID[strings.ToLower(res.Identifier)] = res
	}
	return r
}

// Lookup finds the protected resource an identifier of the given kind
// refers to, if any.
func (r *Registry) Lookup(kind model.ResourceKind, identifier string) (model.ProtectedResource, bool) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return model.ProtectedResource{}, false
	}

	if kind == model.KindPath {
		for _, res := range r.paths {
			if identifier == res.Identifier || strings.HasPrefix(identifier, res.Identifier+"/") {
				return res, true
			}
		}
		return model.ProtectedResource{}, false
	}

	res, ok := r.exact[kind][strings.ToLower(identifier)]
	return res, ok
}

// Find looks an identifier up across every kind. Used for the static
// resource references an action declares at registration.
func (r *Registry) Find(identifier string) (model.ProtectedResource, bool) {
	for _, kind := range []model.ResourceKind{model.KindNode, model.KindVMID, model.KindDaemon} {
		if res, ok := r.Lookup(kind, identifier); ok {
			return res, true
		}
	}
	return r.Lookup(model.KindPath, identifier)
}

// All returns the full catalogue in load order.
func (r *Registry) All() []model.ProtectedResource {
	out := make([]model.ProtectedResource, len(r.all))
	copy(out, r.all)
	return out
}

// Describe renders a resource for refusal reasons and CLI listings:
// the identifier, its kind, and what depends on it.
func Describe(res model.ProtectedResource) string {
	var b strings.Builder
	b.WriteString(string(res.Kind))
	b.WriteString(" ")
	b.WriteString(res.Identifier)
	if len(res.Dependents) > 0 {
		b.WriteString(" (depends: ")
		b.WriteString(strings.Join(res.Dependents, ", "))
		b.WriteString(")")
	}
	return b.String()
}
