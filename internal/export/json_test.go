package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iksnae/support-analytics/internal"
)

func TestJSONExporter_Export(t *testing.T) {
	d := internal.BuildDashboard(internal.CreateTestSnapshot(), "open")

	var buf bytes.Buffer
	exporter := &JSONExporter{}
	if err := exporter.Export(d, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var got internal.Dashboard
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Export() produced invalid JSON: %v", err)
	}
	if got.Stats != d.Stats {
		t.Errorf("Stats = %+v, want %+v", got.Stats, d.Stats)
	}
	if got.Filter != "open" || len(got.Issues) != 1 {
		t.Errorf("filter %q with %d issues, want open with 1", got.Filter, len(got.Issues))
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(buf.Bytes(), &raw)
	stats, _ := raw["stats"].(map[string]interface{})
	if _, ok := stats["resolution_rate"]; !ok {
		t.Errorf("stats keys = %v, want snake_case resolution_rate", stats)
	}
}

func TestJSONExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(internal.EmptyDashboard("stub", internal.FilterAll), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"issues": []`)) {
		t.Errorf("empty dashboard should export an empty issue list, got %s", buf.String())
	}
}
