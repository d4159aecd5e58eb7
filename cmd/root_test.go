package cmd

import (
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantErr: false,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantErr: false,
		},
		{
			name:    "unknown command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRootCommand_Version(t *testing.T) {
	out, err := executeCommand("--version")
	if err != nil {
		t.Fatalf("rootCmd.Execute() error = %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Errorf("version output = %q, want it to contain %q", out, "dev")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"summary", "issues", "export", "report", "serve", "publish", "healthcheck", "inspect"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("rootCmd.Find(%q) = %v, %v", name, cmd, err)
		}
	}
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	_, err := executeCommand("summary", "--config", "/nonexistent/config.yaml")
	if err == nil {
		t.Error("summary with a missing config file should error")
	}
}
