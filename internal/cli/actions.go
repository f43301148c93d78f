package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/toolgate-dev/toolgate/internal/audit"
)

var actionsFormat string

func init() {
	rootCmd.AddCommand(actionsCmd)
	actionsCmd.Flags().StringVarP(&actionsFormat, "format", "f", "text", "Output format (text|json)")
}

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List registered actions and their tiers",
	RunE:  runActions,
}

func runActions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gw, err := assembleGateway(cfg, audit.Nop{}, zerolog.Nop())
	if err != nil {
		return err
	}

	infos := gw.Actions()

	if actionsFormat == "json" {
		type item struct {
			Name string `json:"name"`
			Tier string `json:"tier"`
			Doc  string `json:"doc,omitempty"`
		}
		items := make([]item, len(infos))
		for i, info := range infos {
			items[i] = item{Name: info.Name, Tier: info.Tier.String(), Doc: info.Doc}
		}
		out, _ := json.MarshalIndent(items, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	for _, info := range infos {
		fmt.Printf("%-20s %-16s %s\n", info.Name, info.Tier, info.Doc)
	}
	return nil
}
