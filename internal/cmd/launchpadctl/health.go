package launchpadctl

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beztern/launchpad/internal/platform/discovery"
	platformgrpc "github.com/beztern/launchpad/internal/platform/grpc"
	"github.com/beztern/launchpad/internal/platform/timeouts"
	launchpadservice "github.com/beztern/launchpad/internal/services/launchpad"
)

func newHealthCommand(deps Dependencies) *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Wait for the launchpad gRPC health service to report SERVING",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := platformgrpc.Dial(addr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := platformgrpc.WaitForHealth(ctx, conn, launchpadservice.ServiceName, deps.Logger); err != nil {
				return fmt.Errorf("%s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s SERVING\n", addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", deps.envOr(envGRPCAddr, discovery.DefaultGRPCAddr(discovery.ServiceLaunchpad)), "Launchpad gRPC address")
	cmd.Flags().DurationVar(&timeout, "timeout", timeouts.HealthProbe, "How long to wait for SERVING")
	return cmd
}
