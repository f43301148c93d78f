package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/toolgate-dev/toolgate/internal/audit"
	"github.com/toolgate-dev/toolgate/internal/gateway"
	"github.com/toolgate-dev/toolgate/internal/model"
)

var (
	checkArgsJSON  string
	checkConfirmed bool
	checkOverride  bool
	checkKeyword   bool
	checkFormat    string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkArgsJSON, "args", "", `Action arguments as JSON (e.g. '{"node":"agent1"}')`)
	checkCmd.Flags().BoolVar(&checkConfirmed, "confirmed", false, "Assume operator confirmation")
	checkCmd.Flags().BoolVar(&checkOverride, "override", false, "Assume operator override")
	checkCmd.Flags().BoolVar(&checkKeyword, "keyword-approved", false, "Assume keyword approval")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
}

var checkCmd = &cobra.Command{
	Use:   "check <action>",
	Short: "Dry-run an action without executing it",
	Long: "Runs an action through argument validation, sanitization, and the\n" +
		"authorization chain, but never invokes the handler and writes no audit.\n" +
		"Exit code 0 if the call would be allowed, 77 if it would be blocked.",
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	var actionArgs map[string]any
	if checkArgsJSON != "" {
		if err := json.Unmarshal([]byte(checkArgsJSON), &actionArgs); err != nil {
			return fmt.Errorf("parse --args: %w", err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gw, err := assembleGateway(cfg, audit.Nop{}, zerolog.Nop())
	if err != nil {
		return err
	}

	decision := gw.Check(gateway.Request{
		Action:          args[0],
		Args:            actionArgs,
		Source:          model.SourceUser,
		Confirmed:       checkConfirmed,
		Override:        checkOverride,
		KeywordApproved: checkKeyword,
	})

	switch checkFormat {
	case "json":
		out, _ := json.MarshalIndent(map[string]any{
			"action":  args[0],
			"allowed": decision.Allowed,
			"tier":    decision.Tier.String(),
			"reason":  decision.Reason,
		}, "", "  ")
		fmt.Println(string(out))
	default:
		if decision.Allowed {
			fmt.Printf("allowed (tier %s)\n", decision.Tier)
		} else {
			fmt.Printf("blocked (tier %s): %s\n", decision.Tier, decision.Reason)
		}
	}

	if !decision.Allowed {
		os.Exit(77)
	}
	return nil
}
