package alert

import "github.com/rs/zerolog"

// Dispatcher fans out events to the webhooks whose Events list
// matches.
type Dispatcher struct {
	configs []Config
	log     zerolog.Logger
}

// NewDispatcher builds a Dispatcher. Returns nil when configs is
// empty; callers nil-check.
func NewDispatcher(configs []Config, log zerolog.Logger) *Dispatcher {
	if len(configs) == 0 {
		return nil
	}
	return &Dispatcher{configs: configs, log: log}
}

// Dispatch sends the event to every matching webhook. Fires
// goroutines and returns immediately; failures are logged, never
// surfaced to the call that triggered them.
func (d *Dispatcher) Dispatch(event Event) {
	for _, cfg := range d.configs {
		if !matches(cfg.Events, event) {
			continue
		}
		go func(cfg Config) {
			if err := Send(cfg, event); err != nil {
				d.log.Error().Err(err).
					Str("url", cfg.URL).
					Str("call_id", event.CallID).
					Msg("alert delivery failed")
			}
		}(cfg)
	}
}

func matches(events []string, event Event) bool {
	for _, e := range events {
		if e == event.Outcome || e == event.Tier {
			return true
		}
	}
	return false
}
