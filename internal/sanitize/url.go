package sanitize

import (
	"net"
	"net/url"
	"strings"
)

// URL decides whether an outbound fetch target is acceptable: http or
// https only, hostname not on the deny-list, and no address in a
// loopback, private, or link-local range. Hostnames are resolved with
// the configured lookup so a DNS alias for an internal address is
// caught the same as a literal IP. Resolution failure rejects.
func (s *Sanitizer) URL(raw string) Verdict {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return unsafe("empty url")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return unsafe("unparseable url")
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return unsafe("scheme not permitted: " + u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return unsafe("url has no host")
	}

	if _, ok := s.deniedHosts[host]; ok {
		return unsafe("host is denied: " + host)
	}
	for _, suffix := range s.deniedSuffix {
		if strings.HasSuffix(host, suffix) {
			return unsafe("host is denied: " + host)
		}
	}

	if ip := net.ParseIP(host); ip != nil {
		if reason := internalIP(ip); reason != "" {
			return unsafe(reason + ": " + host)
		}
		return safe(u.String())
	}

	ips, err := s.lookupIP(host)
	if err != nil || len(ips) == 0 {
		return unsafe("host does not resolve: " + host)
	}
	for _, ip := range ips {
		if reason := internalIP(ip); reason != "" {
			return unsafe(reason + ": " + host + " -> " + ip.String())
		}
	}

	return safe(u.String())
}

func internalIP(ip net.IP) string {
	switch {
	case ip.IsLoopback():
		return "loopback address"
	case ip.IsPrivate():
		return "private address"
	case ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
		return "link-local address"
	case ip.IsUnspecified():
		return "unspecified address"
	}
	return ""
}
