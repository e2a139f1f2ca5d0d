package logging

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger writing to a file under dir. The TUI owns the
// terminal, so logs never go to stdout/stderr.
func New(mode, dir string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "dev", "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}

	cfg.OutputPaths = []string{filepath.Join(dir, "learnix.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Nop returns a no-op logger for tests and CLI commands that don't need
// log output.
func Nop() *zap.Logger {
	return zap.NewNop()
}
