package sanitize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBack(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if v := s.Command("uptime", false); !v.Safe {
		t.Errorf("default allow-list missing: %s", v.Reason)
	}
}

func TestLoadCustomLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := []byte(`
max_text_len: 32
command_allow: ["hello"]
command_deny: ["goodbye"]
protected_paths: ["/srv/locked"]
denied_hosts: ["bad.example.com"]
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if v := s.Command("hello world", false); !v.Safe {
		t.Errorf("custom allow entry rejected: %s", v.Reason)
	}
	// Custom lists replace the defaults wholesale.
	if v := s.Command("uptime", false); v.Safe {
		t.Error("default allow entry survived a custom load")
	}
	if v := s.Command("hello goodbye", false); v.Safe {
		t.Error("custom deny entry ignored")
	}
	if v := s.Path("/srv/locked/file", ""); v.Safe {
		t.Error("custom protected path ignored")
	}
	if v := s.URL("https://bad.example.com/"); v.Safe {
		t.Error("custom denied host ignored")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("command_allow: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML, got nil")
	}
}
