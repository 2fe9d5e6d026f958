// Package launchpadctl implements the launchpad operator CLI.
package launchpadctl

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beztern/launchpad/internal/platform/clock"
	entrypoint "github.com/beztern/launchpad/internal/platform/cmd"
	"github.com/beztern/launchpad/internal/platform/config"
)

const (
	envTarget   = "BEZTERN_LAUNCHPAD_TARGET"
	envDBPath   = "BEZTERN_LAUNCHPAD_DB_PATH"
	envGRPCAddr = "BEZTERN_LAUNCHPAD_GRPC_ADDR"

	defaultDBPath = "data/launchpad.db"
)

// Dependencies are the capabilities commands run against. Zero values use
// the system clock and a no-op logger.
type Dependencies struct {
	Clock     clock.Clock
	Scheduler clock.Scheduler
	Logger    *zap.Logger
	// Lookup reads environment defaults. Nil uses the process environment.
	Lookup func(string) (string, bool)
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Clock == nil {
		d.Clock = clock.System{}
	}
	if d.Scheduler == nil {
		d.Scheduler = clock.System{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Lookup == nil {
		d.Lookup = os.LookupEnv
	}
	return d
}

func (d Dependencies) envOr(key, fallback string) string {
	if value, ok := config.Lookup(d.Lookup, key); ok {
		return value
	}
	return fallback
}

// NewRootCommand builds the launchpadctl command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	root := &cobra.Command{
		Use:           entrypoint.ServiceLaunchpadCtl,
		Short:         "Operate a launchpad deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCountdownCommand(deps),
		newSignupsCommand(deps),
		newHealthCommand(deps),
	)
	return root
}
