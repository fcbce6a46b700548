// Package main is the entry point for the neuraterra offline visualizer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/neuraterra/internal/config"
	"github.com/Faultbox/neuraterra/internal/logger"
	"github.com/Faultbox/neuraterra/internal/viz"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Neuraterra Visualizer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viz.New(cfg)
	if err != nil {
		logger.Error("failed to create session", zap.Error(err))
		os.Exit(1)
	}

	if err := v.Run(); err != nil {
		logger.Error("evaluation error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("session complete")
}
