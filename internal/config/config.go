// Package config loads gateway configuration from YAML. Loading
// starts from built-in defaults and lets the file overwrite only the
// fields it names, so a two-line config stays two lines.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/toolgate-dev/toolgate/internal/alert"
	"github.com/toolgate-dev/toolgate/internal/model"
	"github.com/toolgate-dev/toolgate/internal/sanitize"
)

// Duration wraps time.Duration so YAML configs can say "10s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds everything the gateway reads at startup. The sanitize
// lists are the only part that hot-reloads; resources and tier
// overrides stay fixed until restart.
type Config struct {
	// AuditLog is the hash-chained JSONL path. Empty disables it.
	AuditLog string `yaml:"audit_log"`

	// AuditDB is the SQLite query store path. Empty disables it.
	AuditDB string `yaml:"audit_db"`

	// AuditTimeout bounds each audit write.
	AuditTimeout Duration `yaml:"audit_timeout"`

	// SlowCall flags handler calls exceeding this duration. They are
	// never aborted, only logged.
	SlowCall Duration `yaml:"slow_call"`

	// AllowedRoot confines file actions to a subtree. Empty means no
	// subtree confinement (protected paths still apply).
	AllowedRoot string `yaml:"allowed_root"`

	// LogLevel is the zerolog level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Sanitize replaces the built-in rule lists when present.
	Sanitize sanitize.Lists `yaml:"sanitize"`

	// Resources is the protected-resource catalogue.
	Resources []model.ProtectedResource `yaml:"resources"`

	// Tiers overrides registered action tiers by name. An override
	// can only raise restriction, never lower it.
	Tiers map[string]model.Tier `yaml:"tiers"`

	// RateLimits caps dispatch frequency per action. The "*" key
	// covers actions without their own entry.
	RateLimits map[string]RateLimit `yaml:"rate_limits"`

	// Alerts lists webhook destinations notified about matching
	// dispatch outcomes.
	Alerts []alert.Config `yaml:"alerts"`
}

// RateLimit caps one action inside a fixed window. Zero values mean
// unlimited.
type RateLimit struct {
	MaxCalls int      `yaml:"max_calls"`
	Window   Duration `yaml:"window"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AuditLog:     filepath.Join(stateDir(), "audit.jsonl"),
		AuditDB:      filepath.Join(stateDir(), "audit.db"),
		AuditTimeout: Duration(2 * time.Second),
		SlowCall:     Duration(10 * time.Second),
		LogLevel:     "info",
		Sanitize:     sanitize.DefaultLists,
	}
}

// DefaultPath is the conventional config location.
func DefaultPath() string {
	return filepath.Join(stateDir(), "config.yaml")
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".toolgate"
	}
	return filepath.Join(home, ".toolgate")
}

// Load reads a config file over the defaults. Empty path means the
// conventional location; a missing file yields plain defaults; a
// malformed file is an error, never a silent fallback.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadWithHash(path)
	return cfg, err
}

// LoadWithHash additionally returns the SHA-256 of the raw file
// bytes, for change detection and audit annotations. Defaults hash
// as empty input.
func LoadWithHash(path string) (*Config, string, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256(nil)
			return Default(), "sha256:" + hex.EncodeToString(h[:]), nil
		}
		return nil, "", fmt.Errorf("read config: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, "", fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, hash, nil
}

func (c *Config) validate() error {
	if c.AllowedRoot != "" && !filepath.IsAbs(c.AllowedRoot) {
		return fmt.Errorf("allowed_root must be absolute, got %q", c.AllowedRoot)
	}
	for i, res := range c.Resources {
		if res.Identifier == "" {
			return fmt.Errorf("resources[%d]: identifier is required", i)
		}
		switch res.Kind {
		case model.KindNode, model.KindVMID, model.KindDaemon, model.KindPath:
		default:
			return fmt.Errorf("resources[%d] (%s): unknown kind %q", i, res.Identifier, res.Kind)
		}
	}
	return nil
}
