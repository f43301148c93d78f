// Package override carries the operator elevation signal for exactly
// one dispatch. The signal rides the call's context under a private
// key rather than any process-wide flag: concurrent dispatches can
// never observe each other's value, and there is nothing to reset on
// exit because the signal dies with the call.
package override

import "context"

type ctxKey struct{}

// With returns a context whose call runs with the given elevation
// state. Set by the dispatcher around one handler invocation only.
func With(ctx context.Context, active bool) context.Context {
	return context.WithValue(ctx, ctxKey{}, active)
}

// Active reports whether the current call runs under operator
// override. A context without the signal reads as false.
func Active(ctx context.Context) bool {
	active, _ := ctx.Value(ctxKey{}).(bool)
	return active
}
