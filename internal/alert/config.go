// Package alert pushes dispatch outcomes to operator webhooks. The
// audit log is the record; alerts are the pager. Delivery is
// best-effort and asynchronous so a dead endpoint never slows a call.
package alert

// Config defines one webhook destination.
type Config struct {
	URL string `yaml:"url" json:"url"`

	// Format selects the payload shape: "generic", "slack", or
	// "pagerduty". Unknown values fall back to generic.
	Format string `yaml:"format" json:"format"`

	// Events lists what to deliver. Entries match an outcome
	// ("blocked", "error") or a tier name ("double_confirm"), so one
	// hook can page on refusals and another on any attempt against
	// high-tier actions.
	Events []string `yaml:"events" json:"events"`

	Headers map[string]string `yaml:"headers" json:"headers"`
}

// Event is the payload sent to webhook endpoints.
type Event struct {
	Timestamp string `json:"timestamp"`
	CallID    string `json:"call_id"`
	Action    string `json:"action"`
	Source    string `json:"source"`
	Tier      string `json:"tier"`
	Outcome   string `json:"outcome"`
	Reason    string `json:"reason,omitempty"`
}
