package alert

import (
	"encoding/json"
	"fmt"
)

// FormatPayload builds the webhook body for the given format.
func FormatPayload(format string, event Event) ([]byte, error) {
	switch format {
	case "slack":
		return formatSlack(event)
	case "pagerduty":
		return formatPagerDuty(event)
	default:
		return json.Marshal(event)
	}
}

func formatSlack(event Event) ([]byte, error) {
	payload := map[string]any{
		"blocks": []any{
			map[string]any{
				"type": "header",
				"text": map[string]any{
					"type": "plain_text",
					"text": fmt.Sprintf("toolgate: %s %s", event.Outcome, event.Action),
				},
			},
			map[string]any{
				"type": "section",
				"fields": []any{
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Action:* %s", event.Action)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Tier:* %s", event.Tier)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Source:* %s", event.Source)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Reason:* %s", event.Reason)},
				},
			},
		},
	}
	return json.Marshal(payload)
}

func formatPagerDuty(event Event) ([]byte, error) {
	payload := map[string]any{
		"event_action": "trigger",
		"payload": map[string]any{
			"summary":  fmt.Sprintf("toolgate %s: %s", event.Outcome, event.Action),
			"severity": severityFor(event.Tier),
			"source":   "toolgate",
			"custom_details": map[string]any{
				"action":  event.Action,
				"tier":    event.Tier,
				"outcome": event.Outcome,
				"reason":  event.Reason,
				"call_id": event.CallID,
			},
		},
	}
	return json.Marshal(payload)
}

func severityFor(tier string) string {
	switch tier {
	case "blocked", "keyword_elevated":
		return "critical"
	case "double_confirm":
		return "error"
	case "confirm":
		return "warning"
	default:
		return "info"
	}
}
