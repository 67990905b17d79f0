package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file created inside the log directory.
const FileName = "smileguide.log"

// New builds a zap logger that appends to dir/smileguide.log. The terminal
// belongs to the TUI, so nothing is written to stdout or stderr.
// The returned cleanup flushes and closes the file.
func New(dir string, level zapcore.Level) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(f), level)
	log := zap.New(core, zap.AddCaller())

	cleanup := func() {
		_ = log.Sync()
		_ = f.Close()
	}
	return log, cleanup, nil
}

// ParseLevel converts a config string to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
