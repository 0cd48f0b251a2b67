package telemetry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/translog/pkg/config"
)

// NewLogger builds the process logger from config. Level accepts the zap
// names (debug, info, warn, error, ...); format is "json" or "console".
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	if cfg.Format == "console" {
		zc.Encoding = "console"
	}
	return zc.Build()
}
