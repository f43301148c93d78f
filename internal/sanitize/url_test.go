package sanitize

import (
	"errors"
	"net"
	"testing"
)

// fakeLookup keeps URL tests off live DNS.
func fakeLookup(hosts map[string][]string) func(string) ([]net.IP, error) {
	return func(host string) ([]net.IP, error) {
		addrs, ok := hosts[host]
		if !ok {
			return nil, errors.New("no such host")
		}
		ips := make([]net.IP, 0, len(addrs))
		for _, a := range addrs {
			ips = append(ips, net.ParseIP(a))
		}
		return ips, nil
	}
}

func TestURLLiteralAddresses(t *testing.T) {
	s := NewDefault()

	tests := []struct {
		url  string
		safe bool
	}{
		{"http://127.0.0.1/x", false},
		{"http://169.254.169.254/latest/meta-data", false},
		{"http://192.168.0.1/", false},
		{"http://10.0.0.5:8080/api", false},
		{"http://172.16.1.1/", false},
		{"http://0.0.0.0/", false},
		{"http://[::1]/", false},
		{"http://93.184.216.34/", true},
	}

	for _, tt := range tests {
		v := s.URL(tt.url)
		if v.Safe != tt.safe {
			t.Errorf("URL(%q): expected safe=%v, got %v (reason: %s)", tt.url, tt.safe, v.Safe, v.Reason)
		}
	}
}

func TestURLHostnames(t *testing.T) {
	s := NewDefault()
	s.lookupIP = fakeLookup(map[string][]string{
		"example.com":      {"93.184.216.34"},
		"evil.example.com": {"10.0.0.5"},
		"dual.example.com": {"93.184.216.34", "192.168.1.1"},
	})

	tests := []struct {
		url  string
		safe bool
	}{
		{"https://example.com/", true},
		{"https://example.com/some/page?q=1", true},
		// DNS alias for an internal address is as bad as the literal.
		{"https://evil.example.com/", false},
		// One internal address among several taints the host.
		{"https://dual.example.com/", false},
		{"https://does-not-resolve.example.com/", false},
	}

	for _, tt := range tests {
		v := s.URL(tt.url)
		if v.Safe != tt.safe {
			t.Errorf("URL(%q): expected safe=%v, got %v (reason: %s)", tt.url, tt.safe, v.Safe, v.Reason)
		}
	}
}

func TestURLDeniedHosts(t *testing.T) {
	s := NewDefault()

	// Deny-list hits never reach DNS.
	s.lookupIP = func(string) ([]net.IP, error) {
		t.Error("lookup called for denied host")
		return nil, errors.New("unreachable")
	}

	tests := []string{
		"http://localhost/admin",
		"http://metadata.google.internal/computeMetadata/v1/",
		"https://nas.local/share",
		"https://proxmox.lan:8006/",
		"https://vault.internal/secrets",
	}

	for _, url := range tests {
		if v := s.URL(url); v.Safe {
			t.Errorf("URL(%q): expected rejection, got safe", url)
		}
	}
}

func TestURLSchemes(t *testing.T) {
	s := NewDefault()
	s.lookupIP = fakeLookup(map[string][]string{"example.com": {"93.184.216.34"}})

	tests := []struct {
		url  string
		safe bool
	}{
		{"https://example.com/", true},
		{"http://example.com/", true},
		{"ftp://example.com/", false},
		{"file:///etc/passwd", false},
		{"gopher://example.com/", false},
		{"javascript:alert(1)", false},
		{"", false},
		{"not a url at all", false},
	}

	for _, tt := range tests {
		v := s.URL(tt.url)
		if v.Safe != tt.safe {
			t.Errorf("URL(%q): expected safe=%v, got %v (reason: %s)", tt.url, tt.safe, v.Safe, v.Reason)
		}
	}
}
