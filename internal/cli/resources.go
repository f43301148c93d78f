package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resourcesFormat string

func init() {
	rootCmd.AddCommand(resourcesCmd)
	resourcesCmd.Flags().StringVarP(&resourcesFormat, "format", "f", "text", "Output format (text|json)")
}

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List protected resources from the config",
	Long: "Shows the protected-resource catalogue the gateway enforces.\n" +
		"Actions targeting any of these are refused regardless of tier.",
	RunE: runResources,
}

func runResources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if resourcesFormat == "json" {
		out, _ := json.MarshalIndent(cfg.Resources, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	if len(cfg.Resources) == 0 {
		fmt.Println("no protected resources configured")
		return nil
	}
	for _, res := range cfg.Resources {
		line := fmt.Sprintf("%-8s %s", res.Kind, res.Identifier)
		if len(res.Dependents) > 0 {
			line += "  (depends: " + strings.Join(res.Dependents, ", ") + ")"
		}
		fmt.Println(line)
	}
	return nil
}
