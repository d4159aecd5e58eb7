package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/support-analytics/internal"
	"github.com/iksnae/support-analytics/internal/publish"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Load the dashboard once and publish it to NATS",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		env, err := openDashboardEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.cfg.NATS.URL == "" {
			return &internal.ConfigError{Key: "nats.url", Err: internal.ErrMissingField}
		}

		pub, err := publish.NewPublisher(ctx, env.cfg.NATS)
		if err != nil {
			return err
		}
		defer pub.Close()

		// only fresh dashboards are published, never the stale fallback
		d, err := loadDashboard(ctx, env.service, internal.FilterAll)
		if err != nil {
			return err
		}

		if err := pub.PublishDashboard(ctx, d); err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Published dashboard %s to %s", d.SnapshotID, publish.Subject(env.cfg.NATS.SubjectPrefix)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
