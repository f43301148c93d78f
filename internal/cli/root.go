// Package cli implements the toolgate command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/toolgate-dev/toolgate/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "toolgate",
	Short: "Safety-tiered tool-execution gateway",
	Long: "Stands between an automation agent and irreversible side effects.\n" +
		"Every tool call passes input sanitization, tier-based authorization,\n" +
		"and protected-resource checks, and leaves a tamper-evident audit trail.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config YAML (default ~/.toolgate/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}
