// gatebot — scripted agent demo for toolgate. The plan mixes routine
// checks with the destructive "cleanup" moves a confused model loves
// to propose. Every step goes through the gateway in-process; the
// agent proposes, the gateway decides.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/toolgate-dev/toolgate/sdk/go/toolgate"
)

const (
	red   = "\033[0;31m"
	green = "\033[0;32m"
	cyan  = "\033[0;36m"
	bold  = "\033[1m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

// step is one proposed tool call.
type step struct {
	action string
	args   map[string]any
	why    string
	opts   []toolgate.CallOption
}

var plan = []step{
	{action: "sys_info", why: "identify the host"},
	{action: "ping", why: "confirm the gateway responds"},
	{action: "run_command", args: map[string]any{"command": "df -h"},
		why: "check disk usage", opts: []toolgate.CallOption{toolgate.Confirmed()}},
	{action: "read_file", args: map[string]any{"path": "/etc/hostname"},
		why: "read the machine identity"},
	{action: "run_command", args: map[string]any{"command": "rm -rf /tmp/*"},
		why: "clean up all temporary files", opts: []toolgate.CallOption{toolgate.Confirmed()}},
	{action: "read_file", args: map[string]any{"path": "/root/.ssh/id_rsa"},
		why: "check system credentials"},
	{action: "http_fetch", args: map[string]any{"url": "http://169.254.169.254/latest/meta-data/"},
		why: "verify network connectivity"},
	{action: "restart_service", args: map[string]any{"service": "nginx"},
		why: "bounce the web server"},
	{action: "restart_service", args: map[string]any{"service": "nginx"},
		why: "bounce the web server, this time with operator sign-off",
		opts: []toolgate.CallOption{toolgate.Confirmed()}},
	{action: "run_command", args: map[string]any{"command": "uptime"},
		why: "final health check", opts: []toolgate.CallOption{toolgate.Confirmed()}},
}

func main() {
	fmt.Printf("%s%s=== TOOLGATE DEMO ===%s\n\n", bold, cyan, reset)

	tg, err := toolgate.New(toolgate.WithConfigPath(os.Getenv("TOOLGATE_CONFIG")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "gatebot: %v\n", err)
		os.Exit(1)
	}
	defer tg.Close()

	// A simulated maintenance action on top of the built-ins, to show
	// what registration looks like from agent-framework code.
	err = tg.Register(toolgate.Action{
		Name: "restart_service",
		Tier: toolgate.TierConfirm,
		Doc:  "restart a system service (simulated)",
		Args: []toolgate.ArgSpec{{Name: "service", Type: toolgate.ArgString, Required: true, Resource: toolgate.KindDaemon}},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return fmt.Sprintf("%v restarted (simulated)", args["service"]), nil
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gatebot: register: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%sRegistered actions:%s\n", bold, reset)
	for _, info := range tg.Actions() {
		fmt.Printf("  %-18s %s%-16s%s %s\n", info.Name, dim, info.Tier, reset, info.Doc)
	}
	fmt.Println()

	fmt.Printf("%s%s=== AGENT PLAN ===%s\n\n", bold, cyan, reset)
	for i, s := range plan {
		fmt.Printf("  %d. %s%-14s%s %s(%s)%s\n", i+1, bold, s.action, reset, dim, s.why, reset)
	}
	fmt.Println()
	time.Sleep(500 * time.Millisecond)

	fmt.Printf("%s%s=== EXECUTING ===%s\n\n", bold, cyan, reset)
	ctx := context.Background()
	var allowed, blocked, failed int

	for i, s := range plan {
		fmt.Printf("%s[%d/%d]%s %s\n", bold, i+1, len(plan), reset, s.why)
		fmt.Printf("  %s> %s %v%s\n", dim, s.action, s.args, reset)

		value, err := tg.Call(ctx, s.action, s.args, s.opts...)

		var blockedErr *toolgate.BlockedError
		switch {
		case err == nil:
			fmt.Printf("  %sOK%s %v\n", green, reset, short(value))
			allowed++
		case errors.As(err, &blockedErr):
			fmt.Printf("  %sBLOCKED%s %s(tier %s)%s %s\n",
				red, reset, dim, blockedErr.Tier, reset, blockedErr.Reason)
			blocked++
		default:
			fmt.Printf("  %sERROR%s %v\n", red, reset, err)
			failed++
		}
		fmt.Println()
		time.Sleep(300 * time.Millisecond)
	}

	fmt.Printf("%s=== RESULTS ===%s\n\n", bold, reset)
	fmt.Printf("  Steps: %d  |  %sAllowed: %d%s  |  %sBlocked: %d%s  |  Errors: %d\n\n",
		len(plan), green, allowed, reset, red, blocked, reset, failed)
	fmt.Printf("%sThe agent proposed; the gateway decided.%s\n", bold, reset)
	fmt.Printf("%sEvery attempt is on record: toolgate audit tail%s\n", dim, reset)
}

// short trims a value for one-line display.
func short(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) > 72 {
		return s[:72] + "..."
	}
	return s
}
