// Package toolgate provides in-process guarded tool dispatch for Go
// agent frameworks. Register actions with risk tiers and argument
// schemas; every call then passes input sanitization, tier-based
// authorization, and protected-resource checks, and leaves an audit
// record, without a subprocess or network hop.
//
// Usage:
//
//	tg, err := toolgate.New(toolgate.WithConfigPath("gateway.yaml"))
//	tg.Register(toolgate.Action{
//	    Name: "restart_service",
//	    Tier: toolgate.TierConfirm,
//	    Args: []toolgate.ArgSpec{{Name: "service", Required: true}},
//	    Handler: restartService,
//	})
//	value, err := tg.Call(ctx, "restart_service",
//	    map[string]any{"service": "nginx"}, toolgate.Confirmed())
//
// A denied call returns *BlockedError carrying the tier and reason; a
// handler failure returns *FaultError. External users import
// github.com/toolgate-dev/toolgate/sdk/go/toolgate.
package toolgate
