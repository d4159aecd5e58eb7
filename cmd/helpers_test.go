package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/iksnae/support-analytics/testutil"
)

// writeTestConfig creates a SQLite fixture and a config file pointing at it
func writeTestConfig(t *testing.T) string {
	t.Helper()
	for _, env := range []string{"SUPABASE_URL", "SUPABASE_ANON_KEY", "SQLITE_PATH", "MONGODB_URI", "MONGODB_DATABASE", "NATS_URL"} {
		t.Setenv(env, "")
	}

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "support.db")
	testutil.CreateSQLiteFixture(t, dbPath)

	configFile := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("source: sqlite\nsqlite:\n  path: %s\ncache_dir: %s\n", dbPath, filepath.Join(dir, "cache"))
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return configFile
}

// executeCommand runs the root command with args and returns its output.
// Flag variables outlive a single Execute, so they are reset first.
func executeCommand(args ...string) (string, error) {
	resetFlags()

	var stdout bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func resetFlags() {
	verbose, configPath, sourceName, strict, clearCache = false, "", "", false, false
	format, outputDir, exportStatus, toStdout = "json", "./exports", "all", false
	summaryStatus, summaryLimit = "all", 20
	issuesStatus, issuesLimit = "all", 0
	reportStatus, reportRaw, reportWidth = "all", false, 100
	healthcheckDetails = false
	inspectSampleRows = 3
	serveAddr = ""
	for _, name := range []string{"help", "version"} {
		if f := rootCmd.Flags().Lookup(name); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}
}
