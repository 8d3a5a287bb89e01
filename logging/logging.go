// Package logging builds the zap loggers used by every craftshelf entry point.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = "info"

// New constructs a JSON logger at level writing to path. An empty path means
// stderr; "-" discards everything, which the non-interactive commands use when
// no log file is set. The TUI writes to DefaultTUIPath instead, since stdout and
// stderr belong to the terminal.
func New(level, path string) (*zap.Logger, error) {
	if path == "-" {
		return zap.NewNop(), nil
	}

	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		// Fall back to the default level when unset or invalid.
		_ = lvl.UnmarshalText([]byte(defaultLevel))
	}

	output := "stderr"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		output = path
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		NameKey:    "logger",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cfg := zap.Config{
		Level:             lvl,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	return cfg.Build()
}

// DefaultTUIPath is the log file used by the terminal UI:
// $XDG_STATE_HOME/craftshelf/craftshelf.log, or ~/.local/state when unset.
func DefaultTUIPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "-"
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "craftshelf", "craftshelf.log")
}
