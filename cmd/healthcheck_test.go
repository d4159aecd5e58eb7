package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHealthcheck_SQLite(t *testing.T) {
	configFile := writeTestConfig(t)
	resetFlags()
	configPath = configFile

	var buf bytes.Buffer
	if err := runHealthcheck(context.Background(), &buf); err != nil {
		t.Fatalf("runHealthcheck() error = %v\n%s", err, buf.String())
	}

	out := buf.String()
	for _, want := range []string{"Source: sqlite", "Store reachable", "2 conversations, 4 messages, 3 issues", "NATS: not configured", "Health check passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("healthcheck output missing %q:\n%s", want, out)
		}
	}
}

func TestHealthcheck_MissingDatabase(t *testing.T) {
	configFile := writeTestConfig(t)
	content := "source: sqlite\nsqlite:\n  path: " + filepath.Join(t.TempDir(), "missing.db") + "\n"
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := executeCommand("healthcheck", "--config", configFile)
	if err == nil {
		t.Error("healthcheck against a missing database should error")
	}
}

func TestHealthcheck_InvalidConfig(t *testing.T) {
	configFile := writeTestConfig(t)

	_, err := executeCommand("healthcheck", "--config", configFile, "--source", "redis")
	if err == nil {
		t.Error("healthcheck with an unknown source should error")
	}
}
