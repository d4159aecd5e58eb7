package internal

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetLogLevel(t *testing.T) {
	originalLevel := logger.GetLevel()
	defer logger.SetLevel(originalLevel)

	tests := []struct {
		level LogLevel
		want  log.Level
	}{
		{LogLevelError, log.ErrorLevel},
		{LogLevelWarn, log.WarnLevel},
		{LogLevelInfo, log.InfoLevel},
		{LogLevelDebug, log.DebugLevel},
	}

	for _, tt := range tests {
		SetLogLevel(tt.level)
		if got := logger.GetLevel(); got != tt.want {
			t.Errorf("SetLogLevel(%d) level = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSetVerbose(t *testing.T) {
	originalLevel := logger.GetLevel()
	defer logger.SetLevel(originalLevel)

	SetVerbose(true)
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("SetVerbose(true) level = %v, want debug", logger.GetLevel())
	}

	SetVerbose(false)
	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("SetVerbose(false) level = %v, want info", logger.GetLevel())
	}
}

func TestLogFunctions(t *testing.T) {
	originalLevel := logger.GetLevel()
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer func() {
		SetLogOutput(os.Stderr)
		logger.SetLevel(originalLevel)
	}()

	SetLogLevel(LogLevelInfo)
	LogError("test error %d", 1)
	LogWarn("test warning")
	LogInfo("test info")
	LogDebug("test debug")

	out := buf.String()
	for _, want := range []string{"test error 1", "test warning", "test info"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "test debug") {
		t.Error("debug message logged at info level")
	}
}

func TestLogLevels(t *testing.T) {
	if LogLevelError >= LogLevelWarn {
		t.Error("LogLevelError should be less than LogLevelWarn")
	}
	if LogLevelWarn >= LogLevelInfo {
		t.Error("LogLevelWarn should be less than LogLevelInfo")
	}
	if LogLevelInfo >= LogLevelDebug {
		t.Error("LogLevelInfo should be less than LogLevelDebug")
	}
}
