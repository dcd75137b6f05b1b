package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "receipt.log")

	logger, closeFn, err := New(path, zapcore.InfoLevel)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("submission finished", zap.String("kind", "text"))
	logger.Debug("dropped below level")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("log has %d lines, want 1: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "submission finished" || entry["level"] != "info" || entry["kind"] != "text" {
		t.Fatalf("entry = %#v, want msg/level/kind fields", entry)
	}
	if _, ok := entry["ts"].(string); !ok {
		t.Fatalf("entry ts = %#v, want RFC3339 string", entry["ts"])
	}
}

func TestNew_InstallsGlobalUntilClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.log")

	logger, closeFn, err := New(path, zapcore.InfoLevel)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if zap.L() != logger {
		t.Fatalf("zap.L() was not replaced")
	}
	closeFn()
	if zap.L() == logger {
		t.Fatalf("zap.L() still points at closed logger")
	}
}

func TestNew_EmptyPathFails(t *testing.T) {
	if _, _, err := New("  ", zapcore.InfoLevel); err == nil {
		t.Fatal("New returned nil error for empty path")
	}
}
