package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/config"
)

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "orrery.log")

	// 1MB is the smallest size lumberjack rotates at
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
	}
	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer resetLogger()

	payload := strings.Repeat("x", 200)
	for frame := 0; frame < 15000; frame++ {
		Sugar.Infof("frame %d: %s", frame, payload)
	}
	Sync()

	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("active log file missing: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var rotated []string
	for _, e := range entries {
		// Backups are named orrery-<timestamp>.log
		if name := e.Name(); name != "orrery.log" && strings.HasPrefix(name, "orrery-20") {
			rotated = append(rotated, name)
		}
	}
	if len(rotated) == 0 {
		t.Errorf("no rotated files in %v", entries)
	}
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()
	all := []string{"DEBUG", "INFO", "WARN", "ERROR"}

	tests := []struct {
		level  string
		lowest int // index into all of the first level written
	}{
		{"debug", 0},
		{"info", 1},
		{"", 1},
		{"warn", 2},
		{"error", 3},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, "level-"+tt.level+".log")
			if err := InitWithFileConfig(tt.level, FileConfig{Path: logFile, MaxSizeMB: 10}, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}
			defer resetLogger()

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			out := string(content)
			for i, lvl := range all {
				if got, want := strings.Contains(out, lvl), i >= tt.lowest; got != want {
					t.Errorf("%s present = %v, want %v", lvl, got, want)
				}
			}
		})
	}
}

func TestInvalidLevel(t *testing.T) {
	if err := InitWithFileConfig("verbose", FileConfig{}, false); err == nil {
		resetLogger()
		t.Fatal("expected an error for an unknown level")
	}
}

func resetLogger() {
	Log = zap.NewNop()
	Sugar = Log.Sugar()
}

func TestInitFromConfig(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "orrery.log")

	cfg := config.Default().Logging
	cfg.LogFile = logFile
	cfg.Level = "warn"

	if err := Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer resetLogger()

	Warn("light source missing", zap.String("body", "sun"))
	Info("should be filtered")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	out := string(content)
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "light source missing") {
		t.Errorf("warning missing from output: %q", out)
	}
	if !strings.Contains(out, "sun") {
		t.Errorf("structured field missing from output: %q", out)
	}
	if strings.Contains(out, "should be filtered") {
		t.Errorf("info message written at warn level: %q", out)
	}
}

func TestDefaultLoggerIsNop(t *testing.T) {
	// Packages log before main calls Init, e.g. in tests.
	if Log == nil || Sugar == nil {
		t.Fatal("global logger must never be nil")
	}
	Debug("discarded")
	Sugar.Infof("discarded %d", 1)
}
