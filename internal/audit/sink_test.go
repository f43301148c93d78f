package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/toolgate-dev/toolgate/internal/model"
)

// memSink collects records for assertions; fail makes every write error.
type memSink struct {
	records []Record
	fail    bool
}

func (m *memSink) Record(_ context.Context, rec Record) error {
	if m.fail {
		return errors.New("sink down")
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memSink) Close() error { return nil }

func TestTeeWritesToAllSinks(t *testing.T) {
	a := &memSink{}
	b := &memSink{}
	tee := Tee{a, b}

	if err := tee.Record(context.Background(), sampleRecord("get_time", model.OutcomeOK)); err != nil {
		t.Fatalf("tee record: %v", err)
	}
	if len(a.records) != 1 || len(b.records) != 1 {
		t.Errorf("expected both sinks to receive the record, got %d and %d", len(a.records), len(b.records))
	}
}

func TestTeeContinuesPastFailingSink(t *testing.T) {
	bad := &memSink{fail: true}
	good := &memSink{}
	tee := Tee{bad, good}

	err := tee.Record(context.Background(), sampleRecord("get_time", model.OutcomeOK))
	if err == nil {
		t.Error("expected the failing sink's error to be reported")
	}
	if len(good.records) != 1 {
		t.Error("expected the healthy sink to still receive the record")
	}
}

func TestNopSwallowsEverything(t *testing.T) {
	var sink Sink = Nop{}
	if err := sink.Record(context.Background(), Record{}); err != nil {
		t.Errorf("nop record: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("nop close: %v", err)
	}
}
