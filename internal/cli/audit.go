package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolgate-dev/toolgate/internal/audit"
	"github.com/toolgate-dev/toolgate/internal/model"
)

var (
	tailLines    int
	querySince   time.Duration
	queryUntil   time.Duration
	queryAction  string
	queryOutcome string
	queryLimit   int
	queryFormat  string
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditTailCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditQueryCmd)

	auditTailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10, "Number of recent records to show")

	auditQueryCmd.Flags().DurationVar(&querySince, "since", 24*time.Hour, "How far back to query (e.g. 24h, 30m)")
	auditQueryCmd.Flags().DurationVar(&queryUntil, "until", 0, "Upper bound, as time before now")
	auditQueryCmd.Flags().StringVar(&queryAction, "action", "", "Filter by action name")
	auditQueryCmd.Flags().StringVar(&queryOutcome, "outcome", "", "Filter by outcome (ok|blocked|error)")
	auditQueryCmd.Flags().IntVar(&queryLimit, "limit", 50, "Maximum records to return")
	auditQueryCmd.Flags().StringVarP(&queryFormat, "format", "f", "text", "Output format (text|json)")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit trail operations",
	Long:  "Commands for inspecting and verifying the dispatch audit trail.",
}

var auditTailCmd = &cobra.Command{
	Use:   "tail [path]",
	Short: "Show recent audit records",
	Long:  "Reads the last N records from the JSONL audit log.\nWithout a path argument the configured audit_log is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuditTail,
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify the audit log hash chain",
	Long: "Walks the JSONL audit log and validates that every record's prev_hash\n" +
		"matches the SHA-256 of the previous line. Exits 0 if intact, 1 if not.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAuditVerify,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the audit database by time range",
	Long:  "Searches the SQLite audit store with time-range, action, and outcome\nfilters. Requires audit_db to be configured.",
	RunE:  runAuditQuery,
}

func auditLogPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.AuditLog == "" {
		return "", fmt.Errorf("no audit_log configured; pass a path")
	}
	return cfg.AuditLog, nil
}

func runAuditTail(cmd *cobra.Command, args []string) error {
	path, err := auditLogPath(args)
	if err != nil {
		return err
	}

	records, err := audit.Tail(path, tailLines)
	if err != nil {
		return fmt.Errorf("read audit log: %w", err)
	}
	for _, rec := range records {
		fmt.Println(audit.FormatLine(rec))
	}
	return nil
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	path, err := auditLogPath(args)
	if err != nil {
		return err
	}

	result := audit.Verify(path)
	if result.Valid {
		fmt.Printf("OK: %d records verified\n", result.Records)
		return nil
	}
	fmt.Fprintf(os.Stderr, "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	os.Exit(1)
	return nil
}

func runAuditQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.AuditDB == "" {
		return fmt.Errorf("no audit_db configured")
	}

	db, err := audit.OpenSQLite(cfg.AuditDB)
	if err != nil {
		return fmt.Errorf("open audit db: %w", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	q := audit.Query{
		From:    now.Add(-querySince),
		Action:  queryAction,
		Outcome: model.Outcome(queryOutcome),
		Limit:   queryLimit,
	}
	if queryUntil > 0 {
		q.To = now.Add(-queryUntil)
	}

	records, err := db.QueryRange(context.Background(), q)
	if err != nil {
		return fmt.Errorf("query audit db: %w", err)
	}

	if queryFormat == "json" {
		out, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(out))
		return nil
	}
	for _, rec := range records {
		fmt.Println(audit.FormatLine(rec))
	}
	return nil
}
