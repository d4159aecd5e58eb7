package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/support-analytics/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	tests := []struct {
		name      string
		dashboard *internal.Dashboard
		wantLines int
		want      []string
	}{
		{
			name:      "empty dashboard",
			dashboard: internal.EmptyDashboard("stub", internal.FilterAll),
			wantLines: 0,
		},
		{
			name:      "all issues",
			dashboard: internal.BuildDashboard(internal.CreateTestSnapshot(), internal.FilterAll),
			wantLines: 4,
			want:      []string{`"id":"i1"`, `"status":"resolved"`, `"category":"refund_requests"`},
		},
		{
			name:      "filtered",
			dashboard: internal.BuildDashboard(internal.CreateTestSnapshot(), "pending"),
			wantLines: 1,
			want:      []string{`"id":"i3"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONLExporter{}
			if err := exporter.Export(tt.dashboard, &buf); err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			output := strings.TrimSpace(buf.String())
			lines := []string{}
			if output != "" {
				lines = strings.Split(output, "\n")
			}
			if len(lines) != tt.wantLines {
				t.Fatalf("Export() wrote %d lines, want %d", len(lines), tt.wantLines)
			}
			for _, line := range lines {
				var obj map[string]interface{}
				if err := json.Unmarshal([]byte(line), &obj); err != nil {
					t.Errorf("line %q is not valid JSON: %v", line, err)
				}
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Export() output missing %s", want)
				}
			}
		})
	}
}

func TestJSONLExporter_OptionalFields(t *testing.T) {
	d := internal.BuildDashboard(internal.CreateTestSnapshot(), "open")
	d.Issues[0].MessageID = ""

	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(d, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if strings.Contains(buf.String(), "message_id") || strings.Contains(buf.String(), "resolved_at") {
		t.Errorf("empty optional fields should be omitted: %s", buf.String())
	}
}
