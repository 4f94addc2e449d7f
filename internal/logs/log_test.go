package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Garsondee/slime-rts/internal/config"
)

func TestInit_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slime.log")
	cfg := config.LogConfig{Level: "info", File: path, MaxSize: 1}
	if err := Init("test", cfg, Options{Quiet: true}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	Debug("hidden at info level")
	Info("tick", zap.Int("resources", 42))
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"tick"`) || !strings.Contains(out, `"resources":42`) {
		t.Fatalf("log file missing entry:\n%s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatal("debug entry written at info level")
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("ANSI colour codes leaked into the file")
	}
}

func TestInit_UnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slime.log")
	if err := Init("test", config.LogConfig{Level: "chatty", File: path}, Options{Quiet: true}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	Info("kept")
	Debug("dropped")
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "kept") || strings.Contains(string(data), "dropped") {
		t.Fatalf("unexpected log contents:\n%s", data)
	}
}

func TestInit_UnwritableDirReturnsError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	before := logger
	err := Init("test", config.LogConfig{File: filepath.Join(blocker, "slime.log")}, Options{Quiet: true})
	if err == nil {
		t.Fatal("expected an error for a log path under a regular file")
	}
	if logger != before {
		t.Fatal("failed Init must keep the previous logger")
	}
}

func TestInit_CreatesLogDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logs", "slime.log")
	if err := Init("test", config.LogConfig{File: path}, Options{Quiet: true}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	Info("hello")
	_ = Sync()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}
