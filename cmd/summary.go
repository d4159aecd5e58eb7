package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/support-analytics/internal"
	"github.com/spf13/cobra"
)

const barWidth = 30

var (
	summaryStatus string
	summaryLimit  int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the support dashboard",
	Long: `Load the three collections and show the dashboard: headline stats,
issues per category, message sentiment, severity and the issue list.

Stats and breakdowns always cover every issue; --status only narrows the list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := internal.ParseStatusFilter(summaryStatus)
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
		renderSummary(cmd.OutOrStdout(), d, time.Now(), summaryLimit)
		return loadErr
	},
}

// renderSummary writes the whole dashboard. limit caps the issue table; 0
// shows every issue.
func renderSummary(w io.Writer, d *internal.Dashboard, now time.Time, limit int) {
	_, _ = fmt.Fprintln(w, sectionStyle.Render("Support Analytics"))
	meta := fmt.Sprintf("source: %s", d.Source)
	if !d.LoadedAt.IsZero() {
		meta += fmt.Sprintf(" · loaded %s", humanize.RelTime(d.LoadedAt, now, "ago", "from now"))
	}
	if d.Stale {
		meta += " · " + warningStyle.Render("stale")
	}
	_, _ = fmt.Fprintln(w, dateStyle.Render(meta))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, renderStatCards(d.Stats))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, titleStyle.Render("Issues by category"))
	renderCategories(w, d.Categories)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, titleStyle.Render("Message sentiment"))
	renderSentiments(w, d.Sentiments)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, titleStyle.Render("Severity"))
	renderSeverities(w, d.Severities)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Issues (%s)", d.Filter)))
	renderIssuesTable(w, d.Issues, now, limit)
}

func renderStatCards(s internal.Stats) string {
	card := func(label, value string) string {
		return cardStyle.Render(cardValueStyle.Render(value) + "\n" + dateStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Conversations", humanize.Comma(int64(s.TotalConversations))),
		card("Messages", humanize.Comma(int64(s.TotalMessages))),
		card("Issues", humanize.Comma(int64(s.TotalIssues))),
		card("Resolution rate", fmt.Sprintf("%d%%", s.ResolutionRate)),
	)
}

func renderCategories(w io.Writer, categories []internal.CategoryCount) {
	if len(categories) == 0 {
		_, _ = fmt.Fprintln(w, dateStyle.Render("  No issues"))
		return
	}

	peak := 0
	for _, c := range categories {
		if c.Count > peak {
			peak = c.Count
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range categories {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\n",
			internal.CategoryLabel(c.Name), bar(c.Count, peak), c.Count,
			dateStyle.Render(fmt.Sprintf("%d resolved", c.Resolved)))
	}
	_ = tw.Flush()
}

func renderSentiments(w io.Writer, sentiments []internal.SentimentCount) {
	total := 0
	for _, s := range sentiments {
		total += s.Value
	}
	if total == 0 {
		_, _ = fmt.Fprintln(w, dateStyle.Render("  No classified messages"))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range sentiments {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%d%%\t%s\n",
			s.Name, bar(s.Value, total), percent(s.Value, total),
			dateStyle.Render(humanize.Comma(int64(s.Value))+" messages"))
	}
	_ = tw.Flush()
}

func renderSeverities(w io.Writer, severities []internal.SeverityCount) {
	parts := make([]string, 0, len(severities))
	for _, s := range severities {
		parts = append(parts, severityStyle(internal.Severity(s.Name)).Render(fmt.Sprintf("%s %d", s.Name, s.Count)))
	}
	_, _ = fmt.Fprintln(w, "  "+strings.Join(parts, "  "))
}

func renderIssuesTable(w io.Writer, issues []internal.Issue, now time.Time, limit int) {
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(w, dateStyle.Render("  No issues match this filter"))
		return
	}

	shown := issues
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  Created\tCategory\tSeverity\tStatus\tDescription")
	for _, issue := range shown {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			humanize.RelTime(issue.CreatedAt, now, "ago", "from now"),
			internal.CategoryLabel(issue.Category),
			severityStyle(issue.Severity).Render(string(issue.Severity)),
			statusStyle(issue.Status).Render(string(issue.Status)),
			oneLine(internal.TruncateDescription(issue.Description, internal.DescriptionPreviewLength)))
	}
	_ = tw.Flush()

	if len(shown) < len(issues) {
		_, _ = fmt.Fprintln(w, dateStyle.Render(fmt.Sprintf("  ... and %d more", len(issues)-len(shown))))
	}
}

// bar draws value relative to full; any non-zero value gets at least one cell
func bar(value, full int) string {
	if full <= 0 || value <= 0 {
		return ""
	}
	n := value * barWidth / full
	if n == 0 {
		n = 1
	}
	return barStyle.Render(strings.Repeat("█", n))
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&summaryStatus, "status", "s", "all", "Issue status to list (all, open, resolved, pending)")
	summaryCmd.Flags().IntVar(&summaryLimit, "limit", 20, "Maximum issues to list (0 for all)")
}
