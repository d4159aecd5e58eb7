package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/support-analytics/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckDetails bool
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the configured store can be read",
	Long: `Check the health of support-analytics by verifying:
  • Configuration for the selected source
  • Store connectivity
  • That all three collections load, with row counts
  • Rows that fail validation

This command is useful for debugging credentials and schema issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHealthcheck(context.Background(), cmd.OutOrStdout())
	},
}

func runHealthcheck(ctx context.Context, w io.Writer) error {
	_, _ = fmt.Fprintln(w, sectionStyle.Render("Support Analytics Health Check"))
	_, _ = fmt.Fprintln(w)

	// Step 1: configuration
	_, _ = fmt.Fprintln(w, infoStyle.Render("Step 1: Checking configuration..."))
	cfg, err := loadConfig()
	if err != nil {
		_, _ = fmt.Fprintln(w, errorStyle.Render("❌ Failed to load configuration:"), err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(w, errorStyle.Render("❌ Invalid configuration:"), err)
		return err
	}
	_, _ = fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✅ Source: %s", cfg.Source)))
	if healthcheckDetails {
		_, _ = fmt.Fprintf(w, "   Fetch timeout: %s\n", cfg.FetchTimeout)
		_, _ = fmt.Fprintf(w, "   Strict validation: %v\n", cfg.Strict)
	}
	_, _ = fmt.Fprintln(w)

	// Step 2: connect
	_, _ = fmt.Fprintln(w, infoStyle.Render("Step 2: Connecting to store..."))
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	src, err := internal.NewSource(ctx, cfg)
	if err != nil {
		_, _ = fmt.Fprintln(w, errorStyle.Render("❌ Failed to open source:"), err)
		return err
	}
	defer func() { _ = src.Close() }()

	if pinger, ok := src.(internal.Pinger); ok {
		start := time.Now()
		if err := pinger.Ping(ctx); err != nil {
			_, _ = fmt.Fprintln(w, errorStyle.Render("❌ Store unreachable:"), err)
			return err
		}
		_, _ = fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✅ Store reachable (%s)", time.Since(start).Round(time.Millisecond))))
	} else {
		_, _ = fmt.Fprintln(w, successStyle.Render("✅ Source opened"))
	}
	_, _ = fmt.Fprintln(w)

	// Step 3: load collections
	_, _ = fmt.Fprintln(w, infoStyle.Render("Step 3: Loading collections..."))
	snap, err := internal.LoadSnapshot(ctx, src, internal.LoadOptions{})
	if err != nil {
		_, _ = fmt.Fprintln(w, errorStyle.Render("❌ Failed to load collections:"), err)
		return err
	}
	_, _ = fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✅ %s conversations, %s messages, %s issues",
		humanize.Comma(int64(len(snap.Conversations))),
		humanize.Comma(int64(len(snap.Messages))),
		humanize.Comma(int64(len(snap.Issues))))))

	if len(snap.Rejected) > 0 {
		_, _ = fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("⚠️  %d row(s) failed validation", len(snap.Rejected))))
		for i, verr := range snap.Rejected {
			if !healthcheckDetails && i >= 5 {
				_, _ = fmt.Fprintf(w, "   ... and %d more\n", len(snap.Rejected)-i)
				break
			}
			_, _ = fmt.Fprintf(w, "   %v\n", verr)
		}
	}
	_, _ = fmt.Fprintln(w)

	// Step 4: optional outputs
	_, _ = fmt.Fprintln(w, infoStyle.Render("Step 4: Checking outputs..."))
	if dir, err := cfg.ResolveCacheDir(); err != nil {
		_, _ = fmt.Fprintln(w, warningStyle.Render("⚠️  Cache unavailable:"), err)
	} else {
		_, _ = fmt.Fprintf(w, "   Cache: %s\n", dir)
	}
	if cfg.NATS.URL != "" {
		_, _ = fmt.Fprintf(w, "   NATS: %s (stream %s)\n", cfg.NATS.URL, cfg.NATS.Stream)
	} else {
		_, _ = fmt.Fprintln(w, "   NATS: not configured")
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, successStyle.Render("✅ Health check passed!"))
	return nil
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckDetails, "details", false, "Show detailed diagnostic information")
}
