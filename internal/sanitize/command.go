package sanitize

import (
	"path/filepath"
	"strings"
)

// Command decides whether a shell command may run. The checks, in
// order:
//
//  1. Deny patterns match anywhere, case-insensitive, and apply even
//     under override.
//  2. Structural pipe-to-shell detection (curl ... | sh).
//  3. A full-command match against the chain allow-list accepts
//     compound commands that are explicitly vetted as a whole.
//  4. Any other use of chaining metacharacters (;, &&, ||, |,
//     backticks, $()) is rejected.
//  5. The base command of the single remaining segment must sit in
//     the allow-list, or in the override allow-list when
//     overrideActive is set.
func (s *Sanitizer) Command(cmd string, overrideActive bool) Verdict {
	trimmed := strings.TrimSpace(cmd)
	if trimmed == "" {
		return unsafe("empty command")
	}
	lower := strings.ToLower(trimmed)

	for _, pattern := range s.commandDeny {
		if strings.Contains(lower, pattern) {
			return unsafe("command matches deny pattern: " + pattern)
		}
	}

	if isPipeToShell(lower) {
		return unsafe("pipe-to-shell execution detected")
	}

	for _, re := range s.chainAllow {
		if re.MatchString(trimmed) {
			return safe(trimmed)
		}
	}

	segments := splitCompound(trimmed)
	if len(segments) > 1 || strings.Contains(trimmed, "`") || strings.Contains(trimmed, "$(") {
		return unsafe("shell chaining is not permitted")
	}

	base := baseCommand(segments[0])
	if base == "" {
		return unsafe("empty command")
	}
	if _, ok := s.commandAllow[base]; ok {
		return safe(trimmed)
	}
	if overrideActive {
		if _, ok := s.overrideAllow[base]; ok {
			return safe(trimmed)
		}
	}
	return unsafe("command not in allow-list: " + base)
}

// baseCommand extracts the executable name from one command segment,
// skipping leading VAR=value assignments and stripping any directory
// prefix.
func baseCommand(segment string) string {
	for _, field := range strings.Fields(segment) {
		if isEnvAssignment(field) {
			continue
		}
		return strings.ToLower(filepath.Base(field))
	}
	return ""
}

func isEnvAssignment(field string) bool {
	eq := strings.IndexByte(field, '=')
	if eq < 1 {
		return false
	}
	for _, r := range field[:eq] {
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// splitCompound splits on &&, ||, ; and | while respecting single and
// double quotes, so `grep "a;b"` stays one segment.
func splitCompound(command string) []string {
	var segments []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	flush := func() {
		if seg := strings.TrimSpace(current.String()); seg != "" {
			segments = append(segments, seg)
		}
		current.Reset()
	}

	runes := []rune(command)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if ch == '\'' && !inDouble {
			inSingle = !inSingle
			current.WriteRune(ch)
			continue
		}
		if ch == '"' && !inSingle {
			inDouble = !inDouble
			current.WriteRune(ch)
			continue
		}
		if inSingle || inDouble {
			current.WriteRune(ch)
			continue
		}

		switch {
		case ch == '&' && i+1 < len(runes) && runes[i+1] == '&':
			flush()
			i++
		case ch == '|' && i+1 < len(runes) && runes[i+1] == '|':
			flush()
			i++
		case ch == '|' || ch == ';':
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()

	if len(segments) == 0 {
		return []string{""}
	}
	return segments
}

// isPipeToShell detects download-and-execute patterns like
// "curl ... | sh" or "wget ... | bash".
func isPipeToShell(cmd string) bool {
	if !strings.Contains(cmd, "|") {
		return false
	}

	hasDownloader := false
	for _, d := range []string{"curl", "wget", "fetch"} {
		if strings.Contains(cmd, d) {
			hasDownloader = true
			break
		}
	}
	if !hasDownloader {
		return false
	}

	parts := strings.Split(cmd, "|")
	for i := 1; i < len(parts); i++ {
		trimmed := strings.TrimSpace(parts[i])
		for _, sh := range []string{"sh", "bash", "zsh", "fish", "dash"} {
			if trimmed == sh || strings.HasPrefix(trimmed, sh+" ") {
				return true
			}
		}
	}
	return false
}
