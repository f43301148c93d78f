package toolgate

import (
	"context"

	"github.com/toolgate-dev/toolgate/internal/gateway"
	"github.com/toolgate-dev/toolgate/internal/model"
)

// CallOption adjusts a single request.
type CallOption func(*gateway.Request)

// Confirmed attaches user confirmation. Required once for confirm-tier
// actions and for both rounds of double-confirm actions.
func Confirmed() CallOption {
	return func(r *gateway.Request) { r.Confirmed = true }
}

// Override requests the expanded command allow-list for this call
// only. Deny patterns still apply.
func Override() CallOption {
	return func(r *gateway.Request) { r.Override = true }
}

// KeywordApproved attaches the out-of-band keyword approval that
// keyword-elevated actions demand.
func KeywordApproved() CallOption {
	return func(r *gateway.Request) { r.KeywordApproved = true }
}

// AsUser marks the request as human-initiated in the audit trail.
// Requests default to the api source.
func AsUser() CallOption {
	return func(r *gateway.Request) { r.Source = model.SourceUser }
}

// AsLLM marks the request as agent-initiated in the audit trail.
func AsLLM() CallOption {
	return func(r *gateway.Request) { r.Source = model.SourceLLM }
}

// Call executes an action and folds the tagged result into Go error
// conventions: a blocked call returns *BlockedError, an unknown
// action, schema failure, or handler fault returns *FaultError, and a
// successful call returns the handler's value.
func (c *Client) Call(ctx context.Context, action string, args map[string]any, opts ...CallOption) (any, error) {
	res := c.Execute(ctx, action, args, opts...)
	switch {
	case res.Outcome == OutcomeBlocked:
		return nil, &BlockedError{Action: res.Action, Tier: res.Tier, Reason: res.Reason}
	case res.Outcome == OutcomeError:
		return nil, &FaultError{Action: res.Action, Fault: res.Fault, Msg: res.Err}
	default:
		return res.Value, nil
	}
}
