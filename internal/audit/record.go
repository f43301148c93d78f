// Package audit persists one record per dispatch attempt. The primary
// sink is an append-only JSONL file with SHA-256 hash chaining for
// tamper evidence; an optional SQLite sink adds time-range queries.
// Writes are best-effort: a failing sink must never change the
// caller-visible outcome of the dispatch it describes.
package audit

import (
	"context"
	"time"

	"github.com/toolgate-dev/toolgate/internal/model"
)

// TimestampFormat is the wire format for record timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Record describes one dispatch attempt. Created exactly once per
// call, immutable after creation. PrevHash is filled in by the JSONL
// log when the record is chained.
type Record struct {
	Timestamp  string         `json:"ts"`
	CallID     string         `json:"call_id"`
	Source     model.Source   `json:"source"`
	Action     string         `json:"action"`
	Tier       model.Tier     `json:"tier"`
	Args       map[string]any `json:"args,omitempty"`
	Outcome    model.Outcome  `json:"outcome"`
	DurationMs int64          `json:"duration_ms"`
	Reason     string         `json:"reason,omitempty"`
	PrevHash   string         `json:"prev_hash,omitempty"`
}

// Time parses the record timestamp. Zero time on malformed input.
func (r Record) Time() time.Time {
	t, err := time.Parse(TimestampFormat, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Now renders the current UTC time in the record timestamp format.
func Now() string {
	return time.Now().UTC().Format(TimestampFormat)
}

// Sink receives audit records. Implementations own durability; the
// dispatcher bounds each write with the context deadline and treats
// errors as log-only.
type Sink interface {
	Record(ctx context.Context, rec Record) error
	Close() error
}

// Nop is a Sink that drops everything. Used when auditing is disabled
// and as the test stand-in.
type Nop struct{}

func (Nop) Record(context.Context, Record) error { return nil }
func (Nop) Close() error                         { return nil }

// Tee fans records out to several sinks. Every sink sees every
// record; the first error is reported after all writes were tried.
type Tee []Sink

func (t Tee) Record(ctx context.Context, rec Record) error {
	var first error
	for _, sink := range t {
		if err := sink.Record(ctx, rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t Tee) Close() error {
	var first error
	for _, sink := range t {
		if err := sink.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
