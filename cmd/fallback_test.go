package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/support-analytics/internal"
)

// removeFixtureDB deletes the database writeTestConfig created
func removeFixtureDB(t *testing.T, configFile string) {
	t.Helper()
	if err := os.Remove(filepath.Join(filepath.Dir(configFile), "support.db")); err != nil {
		t.Fatalf("Failed to remove database: %v", err)
	}
}

func TestSummaryCommand_UnreachableStoreShowsLastGood(t *testing.T) {
	configFile := writeTestConfig(t)

	if _, err := executeCommand("summary", "--config", configFile); err != nil {
		t.Fatalf("first summary error = %v", err)
	}
	removeFixtureDB(t, configFile)

	out, err := executeCommand("summary", "--config", configFile)
	if err == nil {
		t.Error("summary over an unreachable store should error")
	}
	for _, want := range []string{"Resolution rate", "33%", "stale", "Access Issues"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryCommand_UnreachableStoreShowsEmpty(t *testing.T) {
	configFile := writeTestConfig(t)
	removeFixtureDB(t, configFile)

	out, err := executeCommand("summary", "--config", configFile)
	if err == nil {
		t.Error("summary over an unreachable store should error")
	}
	if !strings.Contains(out, "No issues match this filter") {
		t.Errorf("summary should render the empty dashboard:\n%s", out)
	}
}

func TestExportCommand_UnreachableStore(t *testing.T) {
	t.Run("stale dashboard is exported", func(t *testing.T) {
		configFile := writeTestConfig(t)
		if _, err := executeCommand("summary", "--config", configFile); err != nil {
			t.Fatalf("first summary error = %v", err)
		}
		removeFixtureDB(t, configFile)

		outDir := t.TempDir()
		if _, err := executeCommand("export", "--config", configFile, "--format", "json", "--output-dir", outDir); err != nil {
			t.Fatalf("export of a stale dashboard error = %v", err)
		}

		files, _ := filepath.Glob(filepath.Join(outDir, "*.json"))
		if len(files) != 1 {
			t.Fatalf("export files = %v, want one", files)
		}
		data, err := os.ReadFile(files[0])
		if err != nil {
			t.Fatal(err)
		}
		var d internal.Dashboard
		if err := json.Unmarshal(data, &d); err != nil {
			t.Fatalf("Failed to decode export: %v", err)
		}
		if !d.Stale || d.Stats.TotalIssues != 3 {
			t.Errorf("exported dashboard stale=%v issues=%d, want stale with 3 issues", d.Stale, d.Stats.TotalIssues)
		}
	})

	t.Run("empty fallback is not exported", func(t *testing.T) {
		configFile := writeTestConfig(t)
		removeFixtureDB(t, configFile)

		outDir := t.TempDir()
		if _, err := executeCommand("export", "--config", configFile, "--format", "json", "--output-dir", outDir); err == nil {
			t.Error("export with nothing loaded should error")
		}
		if files, _ := filepath.Glob(filepath.Join(outDir, "*")); len(files) != 0 {
			t.Errorf("export wrote %v with nothing loaded", files)
		}
	})
}
