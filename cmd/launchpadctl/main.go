// Package main runs the launchpad operator CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/beztern/launchpad/internal/cmd/launchpadctl"
	"github.com/beztern/launchpad/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := launchpadctl.NewRootCommand(launchpadctl.Dependencies{}).ExecuteContext(ctx); err != nil {
		config.Exitf("launchpadctl: %v", err)
	}
}
