// Package logging builds the zap logger used by receipt.
//
// The terminal belongs to the UI, so log output goes to a JSON-lines file that
// the Logs view reads back through the logtail package.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens (or creates) the log file at path and returns a logger writing to
// it. The returned close function flushes and closes the file. The logger is
// also installed as zap's global logger.
func New(path string, level zapcore.Level) (*zap.Logger, func(), error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(EncoderConfig()), zapcore.AddSync(file), level)
	logger := zap.New(core, zap.AddCaller())
	restore := zap.ReplaceGlobals(logger)

	closeFn := func() {
		_ = logger.Sync()
		restore()
		_ = file.Close()
	}
	return logger, closeFn, nil
}

// EncoderConfig is the field layout shared by the writer and the logtail parser.
func EncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.LevelKey = "level"
	cfg.MessageKey = "msg"
	cfg.CallerKey = "caller"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return cfg
}
