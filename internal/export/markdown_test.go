package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/support-analytics/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	tests := []struct {
		name      string
		dashboard *internal.Dashboard
		want      []string
		notWant   []string
	}{
		{
			name:      "full dashboard",
			dashboard: internal.BuildDashboard(internal.CreateTestSnapshot(), internal.FilterAll),
			want: []string{
				"# Support Analytics",
				"| 2 | 4 | 4 | 2 | 50% |",
				"| Access Issues | 3 | 2 |",
				"| Positive | 2 |",
				"## Issues (4)",
			},
			notWant: []string{"could not be refreshed"},
		},
		{
			name:      "empty dashboard",
			dashboard: internal.EmptyDashboard("sqlite", internal.FilterAll),
			want: []string{
				"| 0 | 0 | 0 | 0 | 0% |",
				"_No issues._",
				"_No classified messages._",
				"_No issues match this filter._",
			},
		},
		{
			name: "stale dashboard",
			dashboard: func() *internal.Dashboard {
				d := internal.BuildDashboard(internal.CreateTestSnapshot(), "open")
				d.Stale = true
				return d
			}(),
			want: []string{"could not be refreshed", "**Filter:** open", "## Issues (1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &MarkdownExporter{}
			if err := exporter.Export(tt.dashboard, &buf); err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Export() output missing %q\n%s", want, output)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(output, notWant) {
					t.Errorf("Export() output should not contain %q", notWant)
				}
			}
		})
	}
}

func TestMarkdownExporter_DescriptionCell(t *testing.T) {
	d := internal.BuildDashboard(internal.CreateTestSnapshot(), "open")
	d.Issues[0].Description = "line one\nhas | pipe " + strings.Repeat("x", 120)

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(d, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, `line one has \| pipe`) {
		t.Errorf("description not escaped:\n%s", output)
	}
	if !strings.Contains(output, "...") {
		t.Error("long description not truncated")
	}
}

func TestEscapeCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a|b", `a\|b`},
		{"**bold**", `\*\*bold\*\*`},
		{"one\r\ntwo", "one two"},
	}
	for _, tt := range tests {
		if got := escapeCell(tt.in); got != tt.want {
			t.Errorf("escapeCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
