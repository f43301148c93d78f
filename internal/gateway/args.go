package gateway

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValidationError collects every schema violation in one dispatch.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments: %s", strings.Join(e.Errors, "; "))
}

func (e *ValidationError) add(msg string) {
	e.Errors = append(e.Errors, msg)
}

// validateArgs checks raw arguments against the declared schema and
// returns a normalized copy: strings stay strings, numbers become
// int64 or float64 per the declared type, lists become []string. The
// caller's map is never mutated.
// Unknown argument names are rejected; an argument nobody declared is
// either a caller bug or an injection attempt, and both should fail
// loudly. All violations are reported in one *ValidationError so the
// caller can fix its call in a single round trip.
func validateArgs(specs []ArgSpec, args map[string]any) (map[string]any, error) {
	byName := make(map[string]ArgSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	ve := &ValidationError{}

	var unknown []string
	for name := range args {
		if _, ok := byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		ve.add(fmt.Sprintf("unexpected argument %q", name))
	}

	clean := make(map[string]any, len(args))
	for _, spec := range specs {
		raw, present := args[spec.Name]
		if !present || raw == nil {
			if spec.Required {
				ve.add(fmt.Sprintf("missing required argument %q", spec.Name))
			}
			continue
		}

		value, err := coerce(spec, raw)
		if err != nil {
			ve.add(fmt.Sprintf("argument %q: %v", spec.Name, err))
			continue
		}
		clean[spec.Name] = value
	}

	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return clean, nil
}

func coerce(spec ArgSpec, raw any) (any, error) {
	typ := spec.Type
	if typ == "" {
		// Undeclared type with a sanitizer check still means string.
		typ = ArgString
	}

	switch typ {
	case ArgString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		if len(spec.Enum) > 0 && !inEnum(spec.Enum, s) {
			return nil, fmt.Errorf("value %q not in %v", s, spec.Enum)
		}
		return s, nil

	case ArgInt:
		switch n := raw.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n != float64(int64(n)) {
				return nil, fmt.Errorf("expected integer, got %v", n)
			}
			return int64(n), nil
		case string:
			parsed, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %q", n)
			}
			return parsed, nil
		default:
			return nil, fmt.Errorf("expected integer, got %T", raw)
		}

	case ArgFloat:
		switch n := raw.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case string:
			parsed, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, fmt.Errorf("expected number, got %q", n)
			}
			return parsed, nil
		default:
			return nil, fmt.Errorf("expected number, got %T", raw)
		}

	case ArgBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return b, nil

	case ArgStringList:
		switch list := raw.(type) {
		case []string:
			out := make([]string, len(list))
			copy(out, list)
			return out, nil
		case []any:
			out := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("expected string list, found %T element", item)
				}
				out = append(out, s)
			}
			return out, nil
		default:
			return nil, fmt.Errorf("expected string list, got %T", raw)
		}

	default:
		return nil, fmt.Errorf("unknown argument type %q", spec.Type)
	}
}

func inEnum(enum []string, s string) bool {
	for _, e := range enum {
		if e == s {
			return true
		}
	}
	return false
}
