package sanitize

import (
	"strings"
	"unicode"
)

// DefaultMaxTextLen caps string arguments when no limit is configured.
const DefaultMaxTextLen = 4096

// Text strips control and null bytes from s and truncates it to
// maxLen runes. Newlines and tabs survive; everything else in the
// control range is dropped. maxLen <= 0 uses the configured default.
// Pure: no side effects, no verdict, the cleaned string is always
// usable.
func (s *Sanitizer) Text(in string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = s.maxTextLen
	}

	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == 0 || unicode.IsControl(r) {
			return -1
		}
		return r
	}, in)

	runes := []rune(cleaned)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return cleaned
}
