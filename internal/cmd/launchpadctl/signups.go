package launchpadctl

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beztern/launchpad/internal/services/launchpad/storage/sqlite"
)

const defaultSignupLimit = 50

func newSignupsCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signups",
		Short: "Inspect launch notification sign-ups",
	}
	cmd.AddCommand(newSignupsListCommand(deps))
	return cmd
}

func newSignupsListCommand(deps Dependencies) *cobra.Command {
	var (
		dbPath string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sign-ups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be positive")
			}
			store, err := sqlite.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open subscription store: %w", err)
			}
			defer store.Close()

			subs, err := store.ListSubscriptions(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list subscriptions: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCHANNEL\tCONTACT\tLOCALE\tCREATED")
			for _, sub := range subs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					sub.ID, sub.Channel, sub.Contact, sub.Locale,
					sub.CreatedAt.UTC().Format(time.RFC3339),
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			deps.Logger.Debug("listed subscriptions", zap.String("db", dbPath), zap.Int("count", len(subs)))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", deps.envOr(envDBPath, defaultDBPath), "Subscription SQLite database path")
	cmd.Flags().IntVar(&limit, "limit", defaultSignupLimit, "Maximum rows to print")
	return cmd
}
