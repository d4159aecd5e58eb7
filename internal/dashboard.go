package internal

import (
	"time"
	"unicode/utf8"
)

// DescriptionPreviewLength is how many characters of an issue description tables show
const DescriptionPreviewLength = 100

// Dashboard is everything a view needs from one snapshot
type Dashboard struct {
	SnapshotID string           `json:"snapshot_id" yaml:"snapshot_id"`
	Source     string           `json:"source" yaml:"source"`
	LoadedAt   time.Time        `json:"loaded_at" yaml:"loaded_at"`
	Filter     StatusFilter     `json:"filter" yaml:"filter"`
	Stats      Stats            `json:"stats" yaml:"stats"`
	Categories []CategoryCount  `json:"categories" yaml:"categories"`
	Sentiments []SentimentCount `json:"sentiments" yaml:"sentiments"`
	Severities []SeverityCount  `json:"severities" yaml:"severities"`
	Issues     []Issue          `json:"issues" yaml:"issues"`
	// Stale is set when the dashboard is a cached copy shown because a load failed
	Stale bool `json:"stale,omitempty" yaml:"stale,omitempty"`
}

// BuildDashboard derives every summary from a snapshot. Stats and
// breakdowns always cover all issues; only the issue list is filtered.
func BuildDashboard(snap *Snapshot, filter StatusFilter) *Dashboard {
	if filter == "" {
		filter = FilterAll
	}
	return &Dashboard{
		SnapshotID: snap.ID,
		Source:     snap.Source,
		LoadedAt:   snap.LoadedAt,
		Filter:     filter,
		Stats:      ComputeStats(snap.Conversations, snap.Messages, snap.Issues),
		Categories: ComputeCategoryBreakdown(snap.Issues),
		Sentiments: ComputeSentimentBreakdown(snap.Messages),
		Severities: ComputeSeverityBreakdown(snap.Issues),
		Issues:     FilterIssuesByStatus(snap.Issues, filter),
	}
}

// EmptyDashboard is the default state shown before any data has loaded
func EmptyDashboard(source string, filter StatusFilter) *Dashboard {
	if filter == "" {
		filter = FilterAll
	}
	return &Dashboard{
		Source:     source,
		Filter:     filter,
		Categories: []CategoryCount{},
		Sentiments: []SentimentCount{},
		Severities: ComputeSeverityBreakdown(nil),
		Issues:     []Issue{},
	}
}

// WithFilter returns a copy of d listing only issues matching filter. It
// can only narrow an unfiltered dashboard; stats are left untouched.
func (d *Dashboard) WithFilter(filter StatusFilter) *Dashboard {
	out := *d
	out.Filter = filter
	out.Issues = FilterIssuesByStatus(d.Issues, filter)
	return &out
}

// TruncateDescription shortens s to limit characters followed by "..."
func TruncateDescription(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
