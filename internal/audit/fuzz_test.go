package audit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/toolgate-dev/toolgate/internal/model"
)

func FuzzVerify(f *testing.F) {
	// Seed with a valid 3-record chain.
	dir := f.TempDir()
	valid := filepath.Join(dir, "valid.jsonl")
	log, err := Open(valid)
	if err != nil {
		f.Fatal(err)
	}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		log.Record(ctx, Record{
			CallID:  "call-fuzz",
			Source:  model.SourceUser,
			Action:  "get_time",
			Tier:    model.TierAuto,
			Outcome: model.OutcomeOK,
		})
	}
	log.Close()
	data, _ := os.ReadFile(valid)

	f.Add(data)
	f.Add([]byte{})
	f.Add([]byte(`{"not":"a record"}` + "\n"))
	f.Add([]byte(`not json at all`))
	f.Add([]byte("{\"prev_hash\":\"sha256:beef\"}\n{\"prev_hash\":\"\"}\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.jsonl")
		os.WriteFile(path, data, 0o600)

		// Must not panic, and a truthful chain report never claims
		// more records than lines.
		result := Verify(path)
		if result.Valid && result.Error != "" {
			t.Error("valid result carries an error")
		}
	})
}
