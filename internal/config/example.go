package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExampleYAML is the starter config written by `toolgate init`. The
// commented entries document the shape without changing behavior.
const ExampleYAML = `# toolgate configuration
#
# Every field is optional; omitted fields keep their built-in default.

# audit_log: ~/.toolgate/audit.jsonl   # hash-chained, tamper-evident
# audit_db:  ~/.toolgate/audit.db      # time-range queries
# audit_timeout: 2s
# slow_call: 10s
# log_level: info

# Confine file actions to a subtree:
# allowed_root: /srv/shared

# Infrastructure the gateway must never disrupt. Actions targeting
# these identifiers are refused regardless of tier or approvals.
resources:
  - identifier: agent1
    kind: node
    dependents: [dns, home-assistant]
  # - identifier: "100"
  #   kind: vmid
  #   dependents: [reverse-proxy]
  # - identifier: pveproxy
  #   kind: daemon

# Raise the tier of a registered action (overrides can only raise):
# tiers:
#   install_package: keyword_elevated

# Cap dispatch frequency per action; "*" covers the rest. Guards
# against runaway agent retry loops.
# rate_limits:
#   run_command: {max_calls: 20, window: 1m}
#   "*": {max_calls: 120, window: 1m}

# Webhook notifications. Events match an outcome (blocked, error) or
# a tier name (double_confirm); format is generic, slack, or pagerduty.
# alerts:
#   - url: https://hooks.slack.com/services/T000/B000/XXXX
#     format: slack
#     events: [blocked, keyword_elevated]

# Sanitizer rule lists. Uncommenting a section replaces that whole
# list; see the defaults in the documentation.
# sanitize:
#   command_allow: [ls, cat, df, uptime]
#   denied_hosts: [localhost, .internal]
`

// WriteExample writes the starter config, refusing to clobber an
// existing file. The write is atomic: temp file then rename.
func WriteExample(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(ExampleYAML), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}
