package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toolgate-dev/toolgate/internal/gateway"
	"github.com/toolgate-dev/toolgate/internal/mcp"
)

var serveNoReload bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveNoReload, "no-reload", false, "Disable sanitizer-rule hot reload")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gateway over MCP stdio",
	Long: "Runs toolgate as an MCP server on stdin/stdout.\n" +
		"Register the binary in an agent's MCP configuration; every tool call\n" +
		"then passes sanitization, tier authorization, protected-resource\n" +
		"checks, and audit. Sanitizer rules hot-reload on config edits;\n" +
		"protected resources and tiers are fixed until restart.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	sink, cleanup, err := openSinks(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	gw, err := assembleGateway(cfg, sink, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		cancel()
	}()

	if !serveNoReload {
		reloader, err := gateway.NewReloader(gw, configPath(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: hot-reload disabled: %v\n", err)
		} else {
			go reloader.Run(ctx)
		}
	}

	fmt.Fprintf(os.Stderr, "toolgate %s serving MCP on stdio\n", version)
	fmt.Fprintf(os.Stderr, "Config: %s\n", configPath())
	if cfg.AuditLog != "" {
		fmt.Fprintf(os.Stderr, "Audit log: %s\n", cfg.AuditLog)
	}
	if cfg.AuditDB != "" {
		fmt.Fprintf(os.Stderr, "Audit db: %s\n", cfg.AuditDB)
	}
	fmt.Fprintln(os.Stderr)

	return mcp.New(gw, version, logger).Run(ctx)
}
