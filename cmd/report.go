package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/iksnae/support-analytics/internal"
	"github.com/iksnae/support-analytics/internal/export"
	"github.com/spf13/cobra"
)

var (
	reportStatus string
	reportRaw    bool
	reportWidth  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the Markdown report in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := internal.ParseStatusFilter(reportStatus)
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

		out, err := renderReport(d, reportRaw, reportWidth)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
		return loadErr
	},
}

// renderReport produces the Markdown report, styled for the terminal unless raw
func renderReport(d *internal.Dashboard, raw bool, width int) (string, error) {
	var buf bytes.Buffer
	if err := (&export.MarkdownExporter{}).Export(d, &buf); err != nil {
		return "", err
	}
	if raw {
		return buf.String(), nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportStatus, "status", "s", "all", "Issue status to list (all, open, resolved, pending)")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "Print Markdown without terminal styling")
	reportCmd.Flags().IntVar(&reportWidth, "width", 100, "Word wrap width")
}
