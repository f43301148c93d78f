package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/toolgate-dev/toolgate/internal/alert"
	"github.com/toolgate-dev/toolgate/internal/audit"
	"github.com/toolgate-dev/toolgate/internal/config"
	"github.com/toolgate-dev/toolgate/internal/gateway"
	"github.com/toolgate-dev/toolgate/internal/ratelimit"
	"github.com/toolgate-dev/toolgate/internal/resource"
	"github.com/toolgate-dev/toolgate/internal/sanitize"
	"github.com/toolgate-dev/toolgate/internal/tools"
)

func loadConfig() (*config.Config, error) {
	return config.Load(configPath())
}

// newLogger writes structured logs to stderr; stdout belongs to the
// MCP transport.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}

// assembleGateway builds the dispatcher every command shares: built-in
// actions, config tier overrides, resource catalogue, sanitizer rules.
func assembleGateway(cfg *config.Config, sink audit.Sink, logger zerolog.Logger) (*gateway.Gateway, error) {
	reg := gateway.NewRegistry()
	if err := tools.RegisterBuiltins(reg); err != nil {
		return nil, fmt.Errorf("register builtins: %w", err)
	}
	if err := reg.ApplyTierOverrides(cfg.Tiers); err != nil {
		return nil, fmt.Errorf("apply tier overrides: %w", err)
	}

	return gateway.New(gateway.Options{
		Registry:     reg,
		Resources:    resource.New(cfg.Resources),
		Sanitizer:    sanitize.New(cfg.Sanitize),
		Sink:         sink,
		Limiter:      ratelimit.New(limitsFrom(cfg.RateLimits)),
		Alerts:       alert.NewDispatcher(cfg.Alerts, logger),
		AuditTimeout: cfg.AuditTimeout.Std(),
		SlowCall:     cfg.SlowCall.Std(),
		AllowedRoot:  cfg.AllowedRoot,
		Logger:       logger,
	}), nil
}

func limitsFrom(cfg map[string]config.RateLimit) map[string]ratelimit.Limit {
	if len(cfg) == 0 {
		return nil
	}
	limits := make(map[string]ratelimit.Limit, len(cfg))
	for action, rl := range cfg {
		limits[action] = ratelimit.Limit{MaxCalls: rl.MaxCalls, Window: rl.Window.Std()}
	}
	return limits
}

// openSinks opens the configured audit stores. The returned cleanup
// closes them; it is safe to call when no store is configured.
func openSinks(cfg *config.Config) (audit.Sink, func(), error) {
	var tee audit.Tee

	if cfg.AuditLog != "" {
		log, err := audit.Open(cfg.AuditLog)
		if err != nil {
			return nil, nil, fmt.Errorf("open audit log: %w", err)
		}
		tee = append(tee, log)
	}
	if cfg.AuditDB != "" {
		db, err := audit.OpenSQLite(cfg.AuditDB)
		if err != nil {
			tee.Close()
			return nil, nil, fmt.Errorf("open audit db: %w", err)
		}
		tee = append(tee, db)
	}

	if len(tee) == 0 {
		return audit.Nop{}, func() {}, nil
	}
	return tee, func() { _ = tee.Close() }, nil
}
