package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temp dir for log file
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}

			// Check that log file was created
			logPath := filepath.Join(tempDir, "testbed", "testbed.log")
			if _, err := os.Stat(logPath); os.IsNotExist(err) {
				t.Errorf("Log file was not created at %s", logPath)
			}
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	got := getLogFilePath()
	want := filepath.Join("/custom/state", "testbed", "testbed.log")
	if got != want {
		t.Errorf("getLogFilePath() = %q, want %q", got, want)
	}
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("workspace")
	// A component logger must be usable without further setup
	logger.Debug().Msg("component logger smoke check")
}

func TestLogOperationStart(t *testing.T) {
	logger := GetLogger("op")

	done := LogOperationStart(logger, "sample")
	if done == nil {
		t.Fatal("LogOperationStart must return a completion func")
	}
	done()
}
