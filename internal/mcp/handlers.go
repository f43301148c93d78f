package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/toolgate-dev/toolgate/internal/gateway"
	"github.com/toolgate-dev/toolgate/internal/model"
)

// ExecuteInput defines parameters for the toolgate_execute tool.
type ExecuteInput struct {
	Action          string         `json:"action" jsonschema:"name of the action to dispatch"`
	Args            map[string]any `json:"args,omitempty" jsonschema:"action arguments"`
	Confirmed       bool           `json:"confirmed,omitempty" jsonschema:"the operator confirmed this action"`
	Override        bool           `json:"override,omitempty" jsonschema:"operator override for this single call"`
	KeywordApproved bool           `json:"keyword_approved,omitempty" jsonschema:"distinct keyword approval for elevated actions"`
}

// ExecuteOutput is the tagged dispatch result.
type ExecuteOutput struct {
	CallID     string `json:"call_id"`
	Outcome    string `json:"outcome"`
	Tier       string `json:"tier"`
	Value      any    `json:"value,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Fault      string `json:"fault,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// CheckInput defines parameters for the toolgate_check tool.
type CheckInput struct {
	Action          string         `json:"action" jsonschema:"name of the action to check"`
	Args            map[string]any `json:"args,omitempty" jsonschema:"action arguments"`
	Confirmed       bool           `json:"confirmed,omitempty" jsonschema:"assume operator confirmation"`
	Override        bool           `json:"override,omitempty" jsonschema:"assume operator override"`
	KeywordApproved bool           `json:"keyword_approved,omitempty" jsonschema:"assume keyword approval"`
}

// CheckOutput is the dry-run decision.
type CheckOutput struct {
	Allowed bool   `json:"allowed"`
	Tier    string `json:"tier"`
	Reason  string `json:"reason,omitempty"`
}

// ActionsInput is empty; the listing takes no parameters.
type ActionsInput struct{}

// ActionsOutput lists the registered actions.
type ActionsOutput struct {
	Actions []ActionItem `json:"actions"`
}

// ActionItem describes one registered action.
type ActionItem struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
	Doc  string `json:"doc,omitempty"`
}

// MCP callers are the agent by definition, so every request is
// attributed to the llm source regardless of what it claims.
func (s *Server) handleExecute(ctx context.Context, _ *mcpsdk.CallToolRequest, input ExecuteInput) (*mcpsdk.CallToolResult, ExecuteOutput, error) {
	res := s.gw.Execute(ctx, gateway.Request{
		Action:          input.Action,
		Args:            input.Args,
		Source:          model.SourceLLM,
		Confirmed:       input.Confirmed,
		Override:        input.Override,
		KeywordApproved: input.KeywordApproved,
	})

	out := ExecuteOutput{
		CallID:     res.CallID,
		Outcome:    string(res.Outcome),
		Tier:       res.Tier.String(),
		Value:      res.Value,
		Reason:     res.Reason,
		Fault:      string(res.Fault),
		Error:      res.Err,
		DurationMs: res.Duration.Milliseconds(),
	}

	if !res.IsOK() {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleCheck(_ context.Context, _ *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	decision := s.gw.Check(gateway.Request{
		Action:          input.Action,
		Args:            input.Args,
		Source:          model.SourceLLM,
		Confirmed:       input.Confirmed,
		Override:        input.Override,
		KeywordApproved: input.KeywordApproved,
	})

	return nil, CheckOutput{
		Allowed: decision.Allowed,
		Tier:    decision.Tier.String(),
		Reason:  decision.Reason,
	}, nil
}

func (s *Server) handleActions(context.Context, *mcpsdk.CallToolRequest, ActionsInput) (*mcpsdk.CallToolResult, ActionsOutput, error) {
	infos := s.gw.Actions()
	items := make([]ActionItem, len(infos))
	for i, info := range infos {
		items[i] = ActionItem{
			Name: info.Name,
			Tier: info.Tier.String(),
			Doc:  info.Doc,
		}
	}
	return nil, ActionsOutput{Actions: items}, nil
}
