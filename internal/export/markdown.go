package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/support-analytics/internal"
)

// MarkdownExporter exports the dashboard as a Markdown report
type MarkdownExporter struct{}

// Export writes the headline stats, the breakdowns and the issue list of d
func (e *MarkdownExporter) Export(d *internal.Dashboard, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Support Analytics\n\n")

	_, _ = fmt.Fprintf(w, "**Source:** %s  \n", d.Source)
	if !d.LoadedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "**Loaded:** %s  \n", d.LoadedAt.UTC().Format(time.RFC3339))
	}
	_, _ = fmt.Fprintf(w, "**Filter:** %s\n\n", d.Filter)
	if d.Stale {
		_, _ = fmt.Fprintf(w, "> Data could not be refreshed; showing the last loaded dashboard.\n\n")
	}

	s := d.Stats
	_, _ = fmt.Fprintf(w, "## Overview\n\n")
	_, _ = fmt.Fprintf(w, "| Conversations | Messages | Issues | Resolved | Resolution rate |\n")
	_, _ = fmt.Fprintf(w, "|---:|---:|---:|---:|---:|\n")
	_, _ = fmt.Fprintf(w, "| %d | %d | %d | %d | %d%% |\n\n",
		s.TotalConversations, s.TotalMessages, s.TotalIssues, s.ResolvedIssues, s.ResolutionRate)

	_, _ = fmt.Fprintf(w, "## Issues by category\n\n")
	if len(d.Categories) == 0 {
		_, _ = fmt.Fprintf(w, "_No issues._\n\n")
	} else {
		_, _ = fmt.Fprintf(w, "| Category | Total | Resolved |\n|---|---:|---:|\n")
		for _, c := range d.Categories {
			_, _ = fmt.Fprintf(w, "| %s | %d | %d |\n", internal.CategoryLabel(c.Name), c.Count, c.Resolved)
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "## Sentiment\n\n")
	if len(d.Sentiments) == 0 {
		_, _ = fmt.Fprintf(w, "_No classified messages._\n\n")
	} else {
		_, _ = fmt.Fprintf(w, "| Sentiment | Messages |\n|---|---:|\n")
		for _, sc := range d.Sentiments {
			_, _ = fmt.Fprintf(w, "| %s | %d |\n", sc.Name, sc.Value)
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "## Severity\n\n")
	_, _ = fmt.Fprintf(w, "| Severity | Issues |\n|---|---:|\n")
	for _, sv := range d.Severities {
		_, _ = fmt.Fprintf(w, "| %s | %d |\n", sv.Name, sv.Count)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "## Issues (%d)\n\n", len(d.Issues))
	if len(d.Issues) == 0 {
		_, _ = fmt.Fprintf(w, "_No issues match this filter._\n")
		return nil
	}
	_, _ = fmt.Fprintf(w, "| Created | Category | Severity | Status | Description |\n|---|---|---|---|---|\n")
	for _, issue := range d.Issues {
		_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			issue.CreatedAt.UTC().Format("2006-01-02 15:04"),
			internal.CategoryLabel(issue.Category),
			issue.Severity,
			issue.Status,
			escapeCell(internal.TruncateDescription(issue.Description, internal.DescriptionPreviewLength)))
	}

	return nil
}

// escapeCell keeps free text from breaking a table row
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "|", "\\|")
	text = strings.ReplaceAll(text, "**", "\\*\\*")
	text = strings.ReplaceAll(text, "__", "\\_\\_")
	return text
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
