package app

import (
	"github.com/guttosm/tier-pricing-service/config"
	"github.com/guttosm/tier-pricing-service/internal/logger"
)

// InitializeLogger configures the global zerolog logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
