package toolgate

import "github.com/rs/zerolog"

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	configPath  string
	skipBuiltin bool
	noAudit     bool
	logger      *zerolog.Logger
}

// WithConfigPath sets the gateway config YAML. Without it the default
// path is used, and a missing file means built-in defaults.
func WithConfigPath(path string) Option {
	return func(c *clientConfig) { c.configPath = path }
}

// WithoutBuiltins skips registering the reference actions, leaving an
// empty registry for the caller to fill. Config tier overrides target
// registered names, so without built-ins they are skipped too; actions
// registered later carry their declared tiers.
func WithoutBuiltins() Option {
	return func(c *clientConfig) { c.skipBuiltin = true }
}

// WithoutAudit disables the configured audit stores. Dispatch results
// are unchanged; nothing is persisted.
func WithoutAudit() Option {
	return func(c *clientConfig) { c.noAudit = true }
}

// WithLogger routes operational events to the given logger instead of
// discarding them.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) { c.logger = &logger }
}
