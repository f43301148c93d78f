package sanitize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathTraversalRejected(t *testing.T) {
	s := NewDefault()

	v := s.Path("/allowed/root/../../etc/passwd", "/allowed/root")
	if v.Safe {
		t.Errorf("expected traversal rejection, got safe (resolved: %s)", v.Resolved)
	}

	v = s.Path("/root/../../etc/shadow", "")
	if v.Safe {
		t.Errorf("expected rejection for /etc/shadow, got safe")
	}
}

func TestPathInsideRoot(t *testing.T) {
	s := NewDefault()
	root := t.TempDir()

	sub := filepath.Join(root, "data")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	tests := []struct {
		path string
		safe bool
	}{
		{filepath.Join(root, "data", "report.txt"), true},
		{"data/report.txt", true},
		{filepath.Join(root, "data", "..", "other.txt"), true},
		{filepath.Join(root, "..", "outside.txt"), false},
		{"../outside.txt", false},
	}

	for _, tt := range tests {
		v := s.Path(tt.path, root)
		if v.Safe != tt.safe {
			t.Errorf("Path(%q, root): expected safe=%v, got %v (reason: %s)", tt.path, tt.safe, v.Safe, v.Reason)
		}
	}
}

func TestPathIdempotent(t *testing.T) {
	s := NewDefault()
	root := t.TempDir()

	v := s.Path(filepath.Join(root, "a", "b", "c.txt"), root)
	if !v.Safe {
		t.Fatalf("first pass: expected safe, got %s", v.Reason)
	}

	again := s.Path(v.Resolved, root)
	if !again.Safe {
		t.Fatalf("second pass: expected safe, got %s", again.Reason)
	}
	if again.Resolved != v.Resolved {
		t.Errorf("expected stable resolution, got %s then %s", v.Resolved, again.Resolved)
	}
}

func TestPathSymlinkEscape(t *testing.T) {
	s := NewDefault()
	root := t.TempDir()
	outside := t.TempDir()

	link := filepath.Join(root, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	v := s.Path(filepath.Join(link, "victim.txt"), root)
	if v.Safe {
		t.Errorf("expected symlink escape rejection, got safe (resolved: %s)", v.Resolved)
	}
}

func TestPathProtectedLocations(t *testing.T) {
	s := NewDefault()

	tests := []string{
		"/etc/passwd",
		"/etc",
		"/boot/grub/grub.cfg",
		"/proc/1/environ",
		"/sys/class/net",
		"/dev/sda",
		"/var/lib/pve-cluster/config.db",
		"/home/operator/.ssh/id_rsa",
		"/home/operator/.aws/credentials",
	}

	for _, path := range tests {
		if v := s.Path(path, ""); v.Safe {
			t.Errorf("Path(%q): expected protected rejection, got safe", path)
		}
	}

	// Ordinary locations pass without a root constraint.
	for _, path := range []string{"/tmp/scratch.txt", "/home/operator/notes.md"} {
		if v := s.Path(path, ""); !v.Safe {
			t.Errorf("Path(%q): expected safe, got rejection (%s)", path, v.Reason)
		}
	}
}

func TestPathRejectsMalformed(t *testing.T) {
	s := NewDefault()

	if v := s.Path("", ""); v.Safe {
		t.Error("empty path: expected rejection")
	}
	if v := s.Path("relative/path.txt", ""); v.Safe {
		t.Error("relative path without root: expected rejection")
	}
	if v := s.Path("/tmp/x\x00y", ""); v.Safe {
		t.Error("null byte: expected rejection")
	}
	if v := s.Path("/tmp/ok.txt", "relative-root"); v.Safe {
		t.Error("relative allowed root: expected rejection")
	}
}
