package sanitize

import (
	"os"
	"path/filepath"
	"strings"
)

// Path resolves a filesystem path to an absolute, symlink-free
// canonical form and decides whether an action may touch it. With a
// non-empty allowedRoot the canonical path must stay inside that
// root; the protected-path list applies either way. The canonical
// form is returned in Verdict.Resolved and the check is idempotent
// on it.
//
// Purely lexical plus symlink resolution of existing ancestors: no
// file is opened, so rejection happens before any filesystem access
// by the handler.
func (s *Sanitizer) Path(path, allowedRoot string) Verdict {
	if strings.TrimSpace(path) == "" {
		return unsafe("empty path")
	}
	if strings.ContainsRune(path, 0) {
		return unsafe("path contains null byte")
	}

	expanded, err := expandHome(path)
	if err != nil {
		return unsafe("cannot expand home directory")
	}

	var root string
	if allowedRoot != "" {
		if !filepath.IsAbs(allowedRoot) {
			return unsafe("allowed root must be absolute")
		}
		root = canonicalize(filepath.Clean(allowedRoot))
	}

	if !filepath.IsAbs(expanded) {
		if root == "" {
			return unsafe("relative path requires an allowed root")
		}
		expanded = filepath.Join(root, expanded)
	}

	resolved := canonicalize(filepath.Clean(expanded))

	if root != "" && !underRoot(resolved, root) {
		return unsafe("path escapes allowed root: " + resolved)
	}

	for _, prefix := range s.protectedPre {
		if resolved == prefix || strings.HasPrefix(resolved, prefix+string(filepath.Separator)) {
			return unsafe("path is protected: " + prefix)
		}
	}
	if len(s.protectedSeg) > 0 {
		for _, seg := range strings.Split(resolved, string(filepath.Separator)) {
			if _, ok := s.protectedSeg[seg]; ok {
				return unsafe("path contains protected segment: " + seg)
			}
		}
	}

	return safe(resolved)
}

func underRoot(resolved, root string) bool {
	if root == "/" {
		return strings.HasPrefix(resolved, "/")
	}
	return resolved == root || strings.HasPrefix(resolved, root+string(filepath.Separator))
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// canonicalize resolves symlinks in as much of the path as exists on
// disk, walking up to the nearest existing ancestor and rejoining the
// rest. A symlinked parent can therefore never smuggle a path out of
// its allowed root.
func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}

	var tail []string
	current := path
	for {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		tail = append(tail, filepath.Base(current))
		if resolved, err := filepath.EvalSymlinks(parent); err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved
		}
		current = parent
	}
	return path
}
