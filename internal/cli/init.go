package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolgate-dev/toolgate/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented starter config",
	Long: "Creates the config YAML with commented defaults: sanitizer rule lists,\n" +
		"protected resources, tier overrides, and audit paths.\n" +
		"Refuses to overwrite an existing file.",
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := config.WriteExample(path); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	fmt.Println("Edit it, then run: toolgate serve")
	return nil
}
