// Package main starts the launchpad landing service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	launchpadcmd "github.com/beztern/launchpad/internal/cmd/launchpad"
	"github.com/beztern/launchpad/internal/platform/config"
)

func main() {
	cfg, err := launchpadcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := launchpadcmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to serve: %v", err)
	}
}
