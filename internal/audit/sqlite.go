package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/toolgate-dev/toolgate/internal/model"
)

// SQLiteSink stores audit records in a SQLite database so operators
// can run time-range queries without replaying the JSONL chain. Used
// alongside the chained log via Tee, never instead of it: the chain
// carries the tamper evidence, this carries the query surface.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the audit database and applies the
// schema.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("audit: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open db: %w", err)
	}

	// WAL lets the serve loop append while a CLI query reads.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("audit: %s: %w", pragma, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS dispatches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		call_id TEXT NOT NULL,
		source TEXT NOT NULL,
		action TEXT NOT NULL,
		tier TEXT NOT NULL,
		args TEXT,
		outcome TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		reason TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_dispatches_ts ON dispatches(ts);
	CREATE INDEX IF NOT EXISTS idx_dispatches_action ON dispatches(action);
	CREATE INDEX IF NOT EXISTS idx_dispatches_outcome ON dispatches(outcome);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: apply schema: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

// Record inserts one dispatch row, honoring the context deadline.
func (s *SQLiteSink) Record(ctx context.Context, rec Record) error {
	if rec.Timestamp == "" {
		rec.Timestamp = Now()
	}

	var args []byte
	if len(rec.Args) > 0 {
		var err error
		if args, err = json.Marshal(rec.Args); err != nil {
			return fmt.Errorf("audit: marshal args: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dispatches (ts, call_id, source, action, tier, args, outcome, duration_ms, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp, rec.CallID, string(rec.Source), rec.Action, rec.Tier.String(),
		string(args), string(rec.Outcome), rec.DurationMs, rec.Reason)
	if err != nil {
		return fmt.Errorf("audit: insert record: %w", err)
	}
	return nil
}

// Query narrows a time-range scan of the dispatch table.
type Query struct {
	From    time.Time
	To      time.Time
	Action  string
	Outcome model.Outcome
	Limit   int
}

// QueryRange returns records matching the query, oldest first.
func (s *SQLiteSink) QueryRange(ctx context.Context, q Query) ([]Record, error) {
	where := "1=1"
	var binds []any
	if !q.From.IsZero() {
		where += " AND ts >= ?"
		binds = append(binds, q.From.UTC().Format(TimestampFormat))
	}
	if !q.To.IsZero() {
		where += " AND ts <= ?"
		binds = append(binds, q.To.UTC().Format(TimestampFormat))
	}
	if q.Action != "" {
		where += " AND action = ?"
		binds = append(binds, q.Action)
	}
	if q.Outcome != "" {
		where += " AND outcome = ?"
		binds = append(binds, string(q.Outcome))
	}

	query := `SELECT ts, call_id, source, action, tier, args, outcome, duration_ms, reason
		FROM dispatches WHERE ` + where + ` ORDER BY ts, id`
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, binds...)
	if err != nil {
		return nil, fmt.Errorf("audit: query range: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var source, tier, args, outcome string
		if err := rows.Scan(&rec.Timestamp, &rec.CallID, &source, &rec.Action,
			&tier, &args, &outcome, &rec.DurationMs, &rec.Reason); err != nil {
			return nil, fmt.Errorf("audit: scan row: %w", err)
		}
		rec.Source = model.Source(source)
		rec.Tier = model.ParseTier(tier)
		rec.Outcome = model.Outcome(outcome)
		if args != "" {
			_ = json.Unmarshal([]byte(args), &rec.Args)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
