package sanitize

import (
	"strings"
	"testing"
)

func TestTextStripsControlBytes(t *testing.T) {
	s := NewDefault()

	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"null\x00byte", "nullbyte"},
		{"bell\x07 and escape\x1b[31m", "bell and escape[31m"},
		{"keep\nnewlines\tand tabs", "keep\nnewlines\tand tabs"},
		{"\x01\x02\x03", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := s.Text(tt.in, 0); got != tt.want {
			t.Errorf("Text(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestTextTruncates(t *testing.T) {
	s := NewDefault()

	if got := s.Text("abcdef", 4); got != "abcd" {
		t.Errorf("expected abcd, got %q", got)
	}

	// Truncation counts runes, not bytes.
	if got := s.Text("héllo wörld", 5); got != "héllo" {
		t.Errorf("expected héllo, got %q", got)
	}

	long := strings.Repeat("x", DefaultMaxTextLen+100)
	if got := s.Text(long, 0); len(got) != DefaultMaxTextLen {
		t.Errorf("expected default cap %d, got %d", DefaultMaxTextLen, len(got))
	}
}
