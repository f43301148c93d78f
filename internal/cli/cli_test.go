package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toolgate-dev/toolgate/internal/audit"
	"github.com/toolgate-dev/toolgate/internal/config"
	"github.com/toolgate-dev/toolgate/internal/model"
)

func TestRunInitCreatesConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	path := configPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not created: %v", err)
	}
	for _, section := range []string{"sanitize", "resources", "tiers", "audit_log"} {
		if !strings.Contains(string(data), section) {
			t.Errorf("starter config missing %q section", section)
		}
	}

	// The scaffold must load back cleanly.
	if _, err := config.Load(path); err != nil {
		t.Errorf("scaffold does not load: %v", err)
	}

	// A second init must refuse to clobber.
	if err := runInit(nil, nil); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestConfigPathFlag(t *testing.T) {
	cfgFile = "/somewhere/else.yaml"
	defer func() { cfgFile = "" }()
	if got := configPath(); got != "/somewhere/else.yaml" {
		t.Errorf("expected flag path, got %q", got)
	}

	cfgFile = ""
	if got := configPath(); !strings.Contains(got, ".toolgate") {
		t.Errorf("expected default under ~/.toolgate, got %q", got)
	}
}

func TestRunActions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""
	actionsFormat = "text"

	if err := runActions(nil, nil); err != nil {
		t.Fatalf("runActions failed: %v", err)
	}
}

func TestRunCheckAllowed(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""
	checkArgsJSON = ""
	checkConfirmed = false
	checkOverride = false
	checkKeyword = false
	checkFormat = "text"

	// ping is auto tier, so this path never reaches the blocked exit.
	if err := runCheck(nil, []string{"ping"}); err != nil {
		t.Fatalf("runCheck failed: %v", err)
	}
}

func TestRunCheckBadArgsJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""
	checkArgsJSON = "{not json"
	defer func() { checkArgsJSON = "" }()

	if err := runCheck(nil, []string{"ping"}); err == nil {
		t.Error("expected error for malformed --args")
	}
}

func TestRunAuditTailAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	log, err := audit.Open(path)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	for _, action := range []string{"ping", "run_command"} {
		err := log.Record(context.Background(), audit.Record{
			CallID:  "call_test",
			Source:  model.SourceUser,
			Action:  action,
			Tier:    model.TierAuto,
			Outcome: model.OutcomeOK,
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	log.Close()

	tailLines = 10
	if err := runAuditTail(nil, []string{path}); err != nil {
		t.Fatalf("runAuditTail failed: %v", err)
	}

	// Valid chain exits through the return path, not os.Exit.
	if err := runAuditVerify(nil, []string{path}); err != nil {
		t.Fatalf("runAuditVerify failed: %v", err)
	}
}

func TestRunAuditQuery(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dbPath := filepath.Join(home, "audit.db")
	cfgPath := filepath.Join(home, "config.yaml")
	content := "audit_db: " + dbPath + "\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfgFile = cfgPath
	defer func() { cfgFile = "" }()

	db, err := audit.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.Record(context.Background(), audit.Record{
		Timestamp: audit.Now(),
		CallID:    "call_q",
		Source:    model.SourceLLM,
		Action:    "ping",
		Tier:      model.TierAuto,
		Outcome:   model.OutcomeOK,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	db.Close()

	queryFormat = "text"
	queryAction = ""
	queryOutcome = ""
	if err := runAuditQuery(nil, nil); err != nil {
		t.Fatalf("runAuditQuery failed: %v", err)
	}
}

func TestAuditQueryWithoutDB(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""

	if err := runAuditQuery(nil, nil); err == nil {
		t.Error("expected error when no audit_db is configured")
	}
}
