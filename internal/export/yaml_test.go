package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/support-analytics/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	d := internal.BuildDashboard(internal.CreateTestSnapshot(), internal.FilterAll)

	var buf bytes.Buffer
	exporter := &YAMLExporter{}
	if err := exporter.Export(d, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"snapshot_id: snapshot-test", "resolution_rate: 50", "name: access_issues"} {
		if !strings.Contains(output, want) {
			t.Errorf("Export() output missing %q", want)
		}
	}

	var got internal.Dashboard
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Export() produced invalid YAML: %v", err)
	}
	if len(got.Categories) != len(d.Categories) || len(got.Issues) != len(d.Issues) {
		t.Errorf("decoded %d categories / %d issues, want %d / %d",
			len(got.Categories), len(got.Issues), len(d.Categories), len(d.Issues))
	}
}
