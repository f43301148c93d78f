// Package sanitize validates untrusted tool arguments before any
// handler sees them: free text, shell commands, filesystem paths,
// URLs, and secret-file checks. Every check returns a Verdict instead
// of an error so callers treat rejection as a normal, terminal outcome
// and never retry with relaxed rules.
package sanitize

import (
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Verdict is the result of one sanitization check.
// Resolved carries the canonical form for paths and normalized URLs.
type Verdict struct {
	Safe     bool   `json:"safe"`
	Reason   string `json:"reason,omitempty"`
	Resolved string `json:"resolved,omitempty"`
}

func safe(resolved string) Verdict {
	return Verdict{Safe: true, Resolved: resolved}
}

func unsafe(reason string) Verdict {
	return Verdict{Safe: false, Reason: reason}
}

// Lists holds the raw rule strings organized by concern. The zero
// value is valid but blocks almost everything; DefaultLists is the
// shipped baseline.
type Lists struct {
	// MaxTextLen caps sanitized string arguments, in runes.
	MaxTextLen int `yaml:"max_text_len"`

	// CommandAllow are base commands runnable without elevation.
	CommandAllow []string `yaml:"command_allow"`

	// OverrideAllow are base commands additionally permitted while an
	// operator override is active. Irrecoverable operations stay out
	// of this list; the deny patterns below apply regardless.
	OverrideAllow []string `yaml:"override_allow"`

	// CommandDeny are substring patterns rejected unconditionally.
	CommandDeny []string `yaml:"command_deny"`

	// ChainAllow are anchored regular expressions for the few compound
	// commands (pipes) that are explicitly acceptable as a whole.
	ChainAllow []string `yaml:"chain_allow"`

	// ProtectedPaths are filesystem locations no action may touch.
	// Absolute entries match as prefixes; bare names match any path
	// segment.
	ProtectedPaths []string `yaml:"protected_paths"`

	// SecretPatterns match file names that hold credentials. Entries
	// may use shell globs; bare names also match dotted suffixes
	// (".env" covers ".env.production").
	SecretPatterns []string `yaml:"secret_patterns"`

	// DeniedHosts are hostnames never fetchable. Entries starting
	// with a dot match as domain suffixes.
	DeniedHosts []string `yaml:"denied_hosts"`
}

// Sanitizer holds compiled rules for fast matching. Immutable after
// construction; hot reload builds a fresh Sanitizer and swaps the
// pointer.
type Sanitizer struct {
	maxTextLen    int
	commandAllow  map[string]struct{}
	overrideAllow map[string]struct{}
	commandDeny   []string
	chainAllow    []*regexp.Regexp
	protectedPre  []string
	protectedSeg  map[string]struct{}
	secretGlobs   []string
	secretNames   []string
	deniedHosts   map[string]struct{}
	deniedSuffix  []string

	// lookupIP is swappable so tests never depend on live DNS.
	lookupIP func(host string) ([]net.IP, error)
}

// New compiles a Sanitizer from raw lists. Malformed chain-allow
// regexes are skipped rather than fatal: a broken pattern must not
// widen or collapse the whole policy.
func New(l Lists) *Sanitizer {
	s := &Sanitizer{
		maxTextLen:    l.MaxTextLen,
		commandAllow:  make(map[string]struct{}, len(l.CommandAllow)),
		overrideAllow: make(map[string]struct{}, len(l.OverrideAllow)),
		protectedSeg:  make(map[string]struct{}),
		deniedHosts:   make(map[string]struct{}),
		lookupIP:      net.LookupIP,
	}
	if s.maxTextLen <= 0 {
		s.maxTextLen = DefaultMaxTextLen
	}

	for _, c := range l.CommandAllow {
		s.commandAllow[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	for _, c := range l.OverrideAllow {
		s.overrideAllow[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	for _, p := range l.CommandDeny {
		s.commandDeny = append(s.commandDeny, strings.ToLower(p))
	}
	for _, expr := range l.ChainAllow {
		if re, err := regexp.Compile("(?i)^(?:" + expr + ")$"); err == nil {
			s.chainAllow = append(s.chainAllow, re)
		}
	}
	for _, p := range l.ProtectedPaths {
		if strings.HasPrefix(p, "/") {
			s.protectedPre = append(s.protectedPre, filepath.Clean(p))
		} else {
			s.protectedSeg[p] = struct{}{}
		}
	}
	for _, p := range l.SecretPatterns {
		if strings.ContainsAny(p, "*?[") {
			s.secretGlobs = append(s.secretGlobs, strings.ToLower(p))
		} else {
			s.secretNames = append(s.secretNames, strings.ToLower(p))
		}
	}
	for _, h := range l.DeniedHosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if strings.HasPrefix(h, ".") {
			s.deniedSuffix = append(s.deniedSuffix, h)
		} else if h != "" {
			s.deniedHosts[h] = struct{}{}
		}
	}

	return s
}

// NewDefault builds a Sanitizer from the shipped baseline lists.
func NewDefault() *Sanitizer {
	return New(DefaultLists)
}

// Load reads sanitizer lists from a YAML file. A missing file falls
// back to the defaults; a malformed file is an error, never a silent
// fallback.
func Load(path string) (*Sanitizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil
		}
		return nil, err
	}

	var l Lists
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	return New(l), nil
}
