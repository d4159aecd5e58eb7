package internal

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stats holds the headline counters of a dashboard
type Stats struct {
	TotalConversations int `json:"total_conversations" yaml:"total_conversations"`
	TotalMessages      int `json:"total_messages" yaml:"total_messages"`
	TotalIssues        int `json:"total_issues" yaml:"total_issues"`
	ResolvedIssues     int `json:"resolved_issues" yaml:"resolved_issues"`
	ResolutionRate     int `json:"resolution_rate" yaml:"resolution_rate"` // whole percent
}

// CategoryCount is the issue count for one category
type CategoryCount struct {
	Name     string `json:"name" yaml:"name"`
	Count    int    `json:"count" yaml:"count"`
	Resolved int    `json:"resolved" yaml:"resolved"`
}

// SentimentCount is the message count for one sentiment label
type SentimentCount struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// SeverityCount is the issue count for one severity
type SeverityCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// ComputeStats counts the three collections and derives the resolution rate
func ComputeStats(conversations []Conversation, messages []Message, issues []Issue) Stats {
	resolved := 0
	for _, issue := range issues {
		if issue.IsResolved() {
			resolved++
		}
	}

	return Stats{
		TotalConversations: len(conversations),
		TotalMessages:      len(messages),
		TotalIssues:        len(issues),
		ResolvedIssues:     resolved,
		ResolutionRate:     ResolutionRate(resolved, len(issues)),
	}
}

// ResolutionRate returns resolved/total as a whole percentage, 0 when total is 0
func ResolutionRate(resolved, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(resolved) / float64(total) * 100))
}

// ComputeCategoryBreakdown groups issues by category in first-seen order
func ComputeCategoryBreakdown(issues []Issue) []CategoryCount {
	index := make(map[string]int)
	breakdown := make([]CategoryCount, 0)

	for _, issue := range issues {
		i, ok := index[issue.Category]
		if !ok {
			i = len(breakdown)
			index[issue.Category] = i
			breakdown = append(breakdown, CategoryCount{Name: issue.Category})
		}
		breakdown[i].Count++
		if issue.IsResolved() {
			breakdown[i].Resolved++
		}
	}

	return breakdown
}

// ComputeSentimentBreakdown groups messages by sentiment in first-seen order.
// Unclassified messages are skipped.
func ComputeSentimentBreakdown(messages []Message) []SentimentCount {
	index := make(map[Sentiment]int)
	breakdown := make([]SentimentCount, 0)

	for _, msg := range messages {
		if msg.Sentiment == "" {
			continue
		}
		i, ok := index[msg.Sentiment]
		if !ok {
			i = len(breakdown)
			index[msg.Sentiment] = i
			breakdown = append(breakdown, SentimentCount{Name: SentimentLabel(msg.Sentiment)})
		}
		breakdown[i].Value++
	}

	return breakdown
}

// SentimentLabel is the display name of a sentiment: "positive" becomes "Positive"
func SentimentLabel(s Sentiment) string {
	// a Caser keeps state, so each call gets its own
	return cases.Title(language.Und).String(string(s))
}

// CategoryLabel is the display name of an issue category: "access_issues"
// becomes "Access Issues"
func CategoryLabel(category string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(category, "_", " "))
}

// ComputeSeverityBreakdown counts issues per known severity, low to high
func ComputeSeverityBreakdown(issues []Issue) []SeverityCount {
	counts := make(map[Severity]int, len(Severities))
	for _, issue := range issues {
		counts[issue.Severity]++
	}

	breakdown := make([]SeverityCount, 0, len(Severities))
	for _, sev := range Severities {
		breakdown = append(breakdown, SeverityCount{Name: string(sev), Count: counts[sev]})
	}
	return breakdown
}

// StatusFilter selects which issues a dashboard lists
type StatusFilter string

// FilterAll keeps every issue
const FilterAll StatusFilter = "all"

// ParseStatusFilter validates a user supplied filter. The empty string means all.
func ParseStatusFilter(value string) (StatusFilter, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", string(FilterAll):
		return FilterAll, nil
	case string(StatusOpen), string(StatusResolved), string(StatusPending):
		return StatusFilter(v), nil
	default:
		return "", fmt.Errorf("%w: %q (supported: all, open, resolved, pending)", ErrInvalidFilter, value)
	}
}

// FilterIssuesByStatus returns the issues whose status equals filter.
// FilterAll returns the input unchanged.
func FilterIssuesByStatus(issues []Issue, filter StatusFilter) []Issue {
	if filter == FilterAll {
		return issues
	}

	filtered := make([]Issue, 0)
	for _, issue := range issues {
		if string(issue.Status) == string(filter) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}
