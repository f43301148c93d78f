package toolgate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/toolgate-dev/toolgate/internal/alert"
	"github.com/toolgate-dev/toolgate/internal/audit"
	"github.com/toolgate-dev/toolgate/internal/config"
	"github.com/toolgate-dev/toolgate/internal/gateway"
	"github.com/toolgate-dev/toolgate/internal/model"
	"github.com/toolgate-dev/toolgate/internal/ratelimit"
	"github.com/toolgate-dev/toolgate/internal/resource"
	"github.com/toolgate-dev/toolgate/internal/sanitize"
	"github.com/toolgate-dev/toolgate/internal/tools"
)

// Client is an in-process gateway. Safe for concurrent use.
type Client struct {
	gw      *gateway.Gateway
	cleanup func()
}

// New builds a Client from the gateway config. The configured audit
// stores are opened unless WithoutAudit is set.
func New(opts ...Option) (*Client, error) {
	var ccfg clientConfig
	for _, o := range opts {
		o(&ccfg)
	}

	path := ccfg.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("toolgate: load config: %w", err)
	}

	reg := gateway.NewRegistry()
	if !ccfg.skipBuiltin {
		if err := tools.RegisterBuiltins(reg); err != nil {
			return nil, fmt.Errorf("toolgate: register builtins: %w", err)
		}
		if err := reg.ApplyTierOverrides(cfg.Tiers); err != nil {
			return nil, fmt.Errorf("toolgate: %w", err)
		}
	}

	var sink audit.Sink = audit.Nop{}
	cleanup := func() {}
	if !ccfg.noAudit {
		var tee audit.Tee
		if cfg.AuditLog != "" {
			log, err := audit.Open(cfg.AuditLog)
			if err != nil {
				return nil, fmt.Errorf("toolgate: open audit log: %w", err)
			}
			tee = append(tee, log)
		}
		if cfg.AuditDB != "" {
			db, err := audit.OpenSQLite(cfg.AuditDB)
			if err != nil {
				tee.Close()
				return nil, fmt.Errorf("toolgate: open audit db: %w", err)
			}
			tee = append(tee, db)
		}
		if len(tee) > 0 {
			sink = tee
			cleanup = func() { _ = tee.Close() }
		}
	}

	logger := zerolog.Nop()
	if ccfg.logger != nil {
		logger = *ccfg.logger
	}

	gw := gateway.New(gateway.Options{
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
	})

	return &Client{gw: gw, cleanup: cleanup}, nil
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

// Register adds an action. An empty or unrecognized tier registers as
// blocked; fail closed, not open.
func (c *Client) Register(a Action) error {
	return c.gw.Registry().Register(toInternalAction(a))
}

// Execute dispatches one request and returns the tagged result. It
// never returns a Go error; see Call for an error-shaped surface.
func (c *Client) Execute(ctx context.Context, action string, args map[string]any, opts ...CallOption) Result {
	return toResult(c.gw.Execute(ctx, c.buildRequest(action, args, opts)))
}

// Check dry-runs a request through sanitization and authorization
// without executing or auditing.
func (c *Client) Check(action string, args map[string]any, opts ...CallOption) Decision {
	d := c.gw.Check(c.buildRequest(action, args, opts))
	return Decision{Allowed: d.Allowed, Tier: Tier(d.Tier.String()), Reason: d.Reason}
}

// Actions lists the registered actions.
func (c *Client) Actions() []Info {
	infos := c.gw.Actions()
	out := make([]Info, len(infos))
	for i, info := range infos {
		out[i] = Info{Name: info.Name, Tier: Tier(info.Tier.String()), Doc: info.Doc}
	}
	return out
}

// Close releases the audit stores.
func (c *Client) Close() error {
	c.cleanup()
	return nil
}

func (c *Client) buildRequest(action string, args map[string]any, opts []CallOption) gateway.Request {
	req := gateway.Request{
		Action: action,
		Args:   args,
		Source: model.SourceAPI,
	}
	for _, o := range opts {
		o(&req)
	}
	return req
}
