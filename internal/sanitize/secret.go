package sanitize

import (
	"path/filepath"
	"strings"
)

// IsSecretFile reports whether a path names a file that, by
// convention, holds credentials or key material. Matching is on the
// base name: glob entries use shell patterns, bare entries match the
// name exactly or as a dotted prefix (".env" also catches
// ".env.production"). Blocks read access even when the path itself
// is otherwise permitted.
func (s *Sanitizer) IsSecretFile(path string) bool {
	base := strings.ToLower(filepath.Base(strings.TrimSpace(path)))
	if base == "" || base == "." || base == "/" {
		return false
	}

	for _, name := range s.secretNames {
		if base == name || strings.HasPrefix(base, name+".") {
			return true
		}
	}
	for _, pattern := range s.secretGlobs {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
