package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

// Read loads every parseable record from a JSONL log. Lines that do
// not parse are skipped: a partially damaged log should still render,
// and Verify is the tool that complains about damage.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audit: open log: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("audit: scan log: %w", err)
	}
	return records, nil
}

// Tail returns the last n records of a JSONL log.
func Tail(path string, n int) ([]Record, error) {
	records, err := Read(path)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

// FormatLine renders one record for terminal output: relative age,
// outcome, tier, action, and the reason when there is one.
func FormatLine(rec Record) string {
	age := rec.Timestamp
	if t := rec.Time(); !t.IsZero() {
		age = humanize.Time(t)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-15s %-8s %-16s %-24s %s/%dms",
		age, strings.ToUpper(string(rec.Outcome)), rec.Tier, rec.Action, rec.Source, rec.DurationMs)
	if rec.Reason != "" {
		b.WriteString("  ")
		b.WriteString(rec.Reason)
	}
	return b.String()
}
