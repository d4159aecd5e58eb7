package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/iksnae/support-analytics/internal"
	"github.com/spf13/cobra"
)

var (
	issuesStatus string
	issuesLimit  int
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List issues, newest first",
	Long:  `List classified issues, newest first, optionally narrowed to one status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := internal.ParseStatusFilter(issuesStatus)
		if err != nil {
			return err
		}

		ctx := context.Background()
		env, err := openDashboardEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		d, loadErr := loadDashboard(ctx, env.service, filter)
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d issue(s), status %s", len(d.Issues), d.Filter)))
		renderIssuesTable(out, d.Issues, time.Now(), issuesLimit)
		return loadErr
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)
	issuesCmd.Flags().StringVarP(&issuesStatus, "status", "s", "all", "Issue status to list (all, open, resolved, pending)")
	issuesCmd.Flags().IntVarP(&issuesLimit, "limit", "n", 0, "Maximum issues to list (0 for all)")
}
