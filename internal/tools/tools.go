// Package tools registers the built-in reference actions: small,
// self-contained handlers that exercise every sanitizer check the
// dispatcher offers. Anything heavier (hypervisor control, SSH
// fan-out, package management) belongs to external modules that
// register their own actions.
package tools

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/toolgate-dev/toolgate/internal/gateway"
	"github.com/toolgate-dev/toolgate/internal/model"
)

// RegisterBuiltins adds the reference action set to the registry.
func RegisterBuiltins(reg *gateway.Registry) error {
	actions := []gateway.Action{
		{
			Name:    "ping",
			Tier:    model.TierAuto,
			Doc:     "Liveness probe; returns pong and the server time.",
			Handler: handlePing,
		},
		{
			Name:    "sys_info",
			Tier:    model.TierAuto,
			Doc:     "Host facts: hostname, OS, architecture, CPU count.",
			Handler: handleSysInfo,
		},
		{
			Name: "read_file",
			Tier: model.TierAuto,
			Doc:  "Read a file, capped in size. Secret files are refused.",
			Args: []gateway.ArgSpec{
				{Name: "path", Type: gateway.ArgString, Required: true, Check: gateway.CheckPath, DenySecrets: true},
				{Name: "max_bytes", Type: gateway.ArgInt},
			},
			Handler: handleReadFile,
		},
		{
			Name: "http_fetch",
			Tier: model.TierAuto,
			Doc:  "GET a public http(s) URL, capped in size.",
			Args: []gateway.ArgSpec{
				{Name: "url", Type: gateway.ArgString, Required: true, Check: gateway.CheckURL},
				{Name: "max_bytes", Type: gateway.ArgInt},
			},
			Handler: handleFetch,
		},
		{
			Name: "run_command",
			Tier: model.TierConfirm,
			Doc:  "Run one allow-listed command without a shell.",
			Args: []gateway.ArgSpec{
				{Name: "command", Type: gateway.ArgString, Required: true, Check: gateway.CheckCommand},
			},
			Handler: handleRunCommand,
		},
	}

	for _, act := range actions {
		if err := reg.Register(act); err != nil {
			return err
		}
	}
	return nil
}

func handlePing(context.Context, map[string]any) (any, error) {
	return map[string]any{
		"reply": "pong",
		"time":  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func handleSysInfo(context.Context, map[string]any) (any, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return map[string]any{
		"hostname": hostname,
		"os":       runtime.GOOS,
		"arch":     runtime.GOARCH,
		"cpus":     runtime.NumCPU(),
		"pid":      os.Getpid(),
	}, nil
}
