package gateway

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/toolgate-dev/toolgate/internal/alert"
	"github.com/toolgate-dev/toolgate/internal/audit"
	"github.com/toolgate-dev/toolgate/internal/model"
	"github.com/toolgate-dev/toolgate/internal/override"
	"github.com/toolgate-dev/toolgate/internal/policy"
	"github.com/toolgate-dev/toolgate/internal/ratelimit"
	"github.com/toolgate-dev/toolgate/internal/resource"
	"github.com/toolgate-dev/toolgate/internal/sanitize"
)

// Request is one dispatch attempt as the caller hands it in. Source
// is descriptive only; the three flags feed the authorization chain.
type Request struct {
	Action          string         `json:"action"`
	Args            map[string]any `json:"args,omitempty"`
	Source          model.Source   `json:"source,omitempty"`
	Confirmed       bool           `json:"confirmed,omitempty"`
	Override        bool           `json:"override,omitempty"`
	KeywordApproved bool           `json:"keyword_approved,omitempty"`
}

// Result is the tagged outcome of one dispatch: ok carries Value,
// blocked carries Reason, error carries Fault and Err. Callers branch
// on Outcome, never on message text.
type Result struct {
	Action   string          `json:"action"`
	CallID   string          `json:"call_id"`
	Tier     model.Tier      `json:"tier"`
	Outcome  model.Outcome   `json:"outcome"`
	Value    any             `json:"value,omitempty"`
	Reason   string          `json:"reason,omitempty"`
	Fault    model.FaultKind `json:"fault,omitempty"`
	Err      string          `json:"error,omitempty"`
	Duration time.Duration   `json:"duration_ns"`
}

// IsOK reports a successful dispatch.
func (r Result) IsOK() bool { return r.Outcome == model.OutcomeOK }

// IsBlocked reports a sanitization or policy refusal.
func (r Result) IsBlocked() bool { return r.Outcome == model.OutcomeBlocked }

// IsError reports an unknown action, schema failure, or handler fault.
func (r Result) IsError() bool { return r.Outcome == model.OutcomeError }

// Options wires a Gateway. Zero fields fall back to safe defaults:
// empty registry, empty resource catalogue, built-in sanitizer rules,
// no audit sink, no logging.
type Options struct {
	Registry     *Registry
	Resources    *resource.Registry
	Sanitizer    *sanitize.Sanitizer
	Sink         audit.Sink
	Limiter      *ratelimit.Limiter
	Alerts       *alert.Dispatcher
	AuditTimeout time.Duration
	SlowCall     time.Duration
	AllowedRoot  string
	Logger       zerolog.Logger
}

// Gateway is the dispatcher. All fields are set at construction; the
// sanitizer alone is swappable for hot reload.
type Gateway struct {
	registry     *Registry
	resources    *resource.Registry
	sanitizer    atomic.Pointer[sanitize.Sanitizer]
	sink         audit.Sink
	limiter      *ratelimit.Limiter
	alerts       *alert.Dispatcher
	auditTimeout time.Duration
	slowCall     time.Duration
	allowedRoot  string
	log          zerolog.Logger
}

// New builds a Gateway from options.
func New(opts Options) *Gateway {
	g := &Gateway{
		registry:     opts.Registry,
		resources:    opts.Resources,
		sink:         opts.Sink,
		limiter:      opts.Limiter,
		alerts:       opts.Alerts,
		auditTimeout: opts.AuditTimeout,
		slowCall:     opts.SlowCall,
		allowedRoot:  opts.AllowedRoot,
		log:          opts.Logger,
	}
	if g.registry == nil {
		g.registry = NewRegistry()
	}
	if g.resources == nil {
		g.resources = resource.New(nil)
	}
	if g.sink == nil {
		g.sink = audit.Nop{}
	}
	if g.auditTimeout <= 0 {
		g.auditTimeout = 2 * time.Second
	}
	if g.slowCall <= 0 {
		g.slowCall = 10 * time.Second
	}
	s := opts.Sanitizer
	if s == nil {
		s = sanitize.NewDefault()
	}
	g.sanitizer.Store(s)
	return g
}

// Registry exposes the action table for registration wiring.
func (g *Gateway) Registry() *Registry { return g.registry }

// Actions returns the capability list.
func (g *Gateway) Actions() []Info { return g.registry.Actions() }

// SwapSanitizer atomically replaces the sanitizer rules. In-flight
// calls finish on the rules they started with.
func (g *Gateway) SwapSanitizer(s *sanitize.Sanitizer) {
	if s != nil {
		g.sanitizer.Store(s)
	}
}

// Execute is the single public entry point for every tool invocation.
//
// Pipeline, in order: look up the action, validate argument shape,
// scrub string values, run per-argument sanitizers, resolve protected
// resources, run the authorization chain, charge the rate limiter,
// invoke the handler inside a fault boundary with the override signal
// scoped to this call, and emit exactly one audit record whatever the
// outcome. Execute never returns a Go error; denials and faults come
// back as tagged Results.
func (g *Gateway) Execute(ctx context.Context, req Request) Result {
	start := time.Now()
	req.Source = model.ParseSource(string(req.Source))

	res := Result{
		Action: req.Action,
		CallID: newCallID(),
		Tier:   model.TierBlocked,
	}

	act, known := g.registry.Get(req.Action)
	if !known {
		res.Outcome = model.OutcomeError
		res.Fault = model.FaultUnknownAction
		res.Err = "unknown action: " + req.Action
		return g.finish(ctx, req, res, req.Args, start)
	}
	res.Tier = act.Tier

	clean, err := validateArgs(act.Args, req.Args)
	if err != nil {
		res.Outcome = model.OutcomeError
		res.Fault = model.FaultSchema
		res.Err = err.Error()
		return g.finish(ctx, req, res, req.Args, start)
	}

	s := g.sanitizer.Load()
	scrubStrings(s, clean)

	if reason, ok := g.checkArgs(s, act, clean, req.Override); !ok {
		res.Outcome = model.OutcomeBlocked
		res.Reason = reason
		return g.finish(ctx, req, res, clean, start)
	}

	decision := policy.Check(policy.Input{
		Action:          act.Name,
		Known:           true,
		Tier:            act.Tier,
		Targets:         g.resolveTargets(act, clean),
		Confirmed:       req.Confirmed,
		Override:        req.Override,
		KeywordApproved: req.KeywordApproved,
	})
	if !decision.Allowed {
		res.Outcome = model.OutcomeBlocked
		res.Reason = decision.Reason
		res.Tier = decision.Tier
		return g.finish(ctx, req, res, clean, start)
	}

	// Rate limits come last so refused-for-policy calls never consume
	// window budget.
	if g.limiter != nil {
		if reason, ok := g.limiter.Allow(act.Name); !ok {
			res.Outcome = model.OutcomeBlocked
			res.Reason = reason
			return g.finish(ctx, req, res, clean, start)
		}
	}

	value, herr := invoke(override.With(ctx, req.Override), act.Handler, clean)
	if herr != nil {
		res.Outcome = model.OutcomeError
		res.Fault = model.FaultHandler
		res.Err = herr.Error()
		return g.finish(ctx, req, res, clean, start)
	}

	res.Outcome = model.OutcomeOK
	res.Value = value
	return g.finish(ctx, req, res, clean, start)
}

// Check runs every pre-execution layer for a request without invoking
// the handler and without writing audit: argument schema, sanitizers,
// resource resolution, and the authorization chain. A dry run for the
// CLI and agent surfaces; schema failures report as denials here
// because nothing would have executed.
func (g *Gateway) Check(req Request) model.SafetyDecision {
	req.Source = model.ParseSource(string(req.Source))

	act, known := g.registry.Get(req.Action)
	if !known {
		return policy.Check(policy.Input{Action: req.Action, Known: false})
	}

	clean, err := validateArgs(act.Args, req.Args)
	if err != nil {
		return model.Deny(act.Tier, "invalid arguments: "+err.Error())
	}

	s := g.sanitizer.Load()
	scrubStrings(s, clean)
	if reason, ok := g.checkArgs(s, act, clean, req.Override); !ok {
		return model.Deny(act.Tier, reason)
	}

	return policy.Check(policy.Input{
		Action:          act.Name,
		Known:           true,
		Tier:            act.Tier,
		Targets:         g.resolveTargets(act, clean),
		Confirmed:       req.Confirmed,
		Override:        req.Override,
		KeywordApproved: req.KeywordApproved,
	})
}

// finish closes out one dispatch: duration, slow-call flagging,
// operational logging, the one audit record, and webhook alerts.
// Audit failures are logged and swallowed; they never alter the
// result.
func (g *Gateway) finish(ctx context.Context, req Request, res Result, args map[string]any, start time.Time) Result {
	res.Duration = time.Since(start)

	if res.Duration >= g.slowCall {
		g.log.Warn().
			Str("call_id", res.CallID).
			Str("action", req.Action).
			Dur("duration", res.Duration).
			Msg("slow call")
	}

	evt := g.log.Info()
	if res.Outcome == model.OutcomeOK {
		evt = g.log.Debug()
	}
	evt.Str("call_id", res.CallID).
		Str("action", req.Action).
		Str("source", string(req.Source)).
		Str("tier", res.Tier.String()).
		Str("outcome", string(res.Outcome)).
		Dur("duration", res.Duration).
		Msg("dispatch")

	reason := res.Reason
	if res.Err != "" {
		reason = res.Err
	}
	rec := audit.Record{
		CallID:     res.CallID,
		Source:     req.Source,
		Action:     req.Action,
		Tier:       res.Tier,
		Args:       g.snapshotArgs(args),
		Outcome:    res.Outcome,
		DurationMs: res.Duration.Milliseconds(),
		Reason:     reason,
	}

	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.auditTimeout)
	defer cancel()
	if err := g.sink.Record(actx, rec); err != nil {
		g.log.Error().Err(err).
			Str("call_id", res.CallID).
			Str("action", req.Action).
			Msg("audit write failed")
	}

	if g.alerts != nil {
		g.alerts.Dispatch(alert.Event{
			Timestamp: audit.Now(),
			CallID:    res.CallID,
			Action:    req.Action,
			Source:    string(req.Source),
			Tier:      res.Tier.String(),
			Outcome:   string(res.Outcome),
			Reason:    reason,
		})
	}

	return res
}

// checkArgs routes declared string arguments through their
// sanitizers. Canonical forms replace the originals so handlers only
// ever see resolved paths and normalized URLs.
func (g *Gateway) checkArgs(s *sanitize.Sanitizer, act *Action, args map[string]any, overrideActive bool) (string, bool) {
	for _, spec := range act.Args {
		raw, present := args[spec.Name]
		if !present {
			continue
		}
		str, isString := raw.(string)
		if !isString {
			continue
		}

		switch spec.Check {
		case CheckCommand:
			v := s.Command(str, overrideActive)
			if !v.Safe {
				return "argument " + spec.Name + ": " + v.Reason, false
			}
			args[spec.Name] = v.Resolved

		case CheckPath:
			v := s.Path(str, g.allowedRoot)
			if !v.Safe {
				return "argument " + spec.Name + ": " + v.Reason, false
			}
			if spec.DenySecrets && s.IsSecretFile(v.Resolved) {
				return "argument " + spec.Name + ": secret file access refused", false
			}
			args[spec.Name] = v.Resolved

		case CheckURL:
			v := s.URL(str)
			if !v.Safe {
				return "argument " + spec.Name + ": " + v.Reason, false
			}
			args[spec.Name] = v.Resolved
		}
	}
	return "", true
}

// resolveTargets collects the protected resources a call would touch:
// argument values declared with a resource kind, plus the action's
// static references.
func (g *Gateway) resolveTargets(act *Action, args map[string]any) []model.ProtectedResource {
	var targets []model.ProtectedResource
	seen := make(map[string]bool)
	add := func(res model.ProtectedResource) {
		key := string(res.Kind) + "/" + res.Identifier
		if !seen[key] {
			seen[key] = true
			targets = append(targets, res)
		}
	}

	for _, spec := range act.Args {
		if spec.Resource == "" {
			continue
		}
		raw, present := args[spec.Name]
		if !present {
			continue
		}
		id := identifierString(raw)
		if id == "" {
			continue
		}
		if res, ok := g.resources.Lookup(spec.Resource, id); ok {
			add(res)
		}
	}

	for _, ref := range act.ResourceRefs {
		if res, ok := g.resources.Find(ref); ok {
			add(res)
		}
	}
	return targets
}

// snapshotArgs builds the audit copy of the arguments: strings
// scrubbed and capped, lists copied, everything else as-is.
func (g *Gateway) snapshotArgs(args map[string]any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	s := g.sanitizer.Load()
	snap := make(map[string]any, len(args))
	for name, raw := range args {
		switch v := raw.(type) {
		case string:
			snap[name] = s.Text(v, 0)
		case []string:
			list := make([]string, len(v))
			for i, item := range v {
				list[i] = s.Text(item, 0)
			}
			snap[name] = list
		default:
			snap[name] = raw
		}
	}
	return snap
}

// scrubStrings cleans control bytes out of every string value in
// place. The map is already the dispatcher's own copy.
func scrubStrings(s *sanitize.Sanitizer, args map[string]any) {
	for name, raw := range args {
		switch v := raw.(type) {
		case string:
			args[name] = s.Text(v, 0)
		case []string:
			for i, item := range v {
				v[i] = s.Text(item, 0)
			}
		}
	}
}

// invoke runs the handler inside the fault boundary. A panic comes
// back as an error so no handler can take the dispatcher down.
func invoke(ctx context.Context, h Handler, args map[string]any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h(ctx, args)
}

func identifierString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func newCallID() string {
	return "call_" + uuid.New().String()[:12]
}
