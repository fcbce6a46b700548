package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagProfile = flag.String("profile", "", "Network profile: encoded or raw")
	flagGrid    = flag.Int("grid", 0, "Grid size (vertices per side)")
	flagWorkers = flag.Int("workers", 0, "Evaluation worker count")
	flagOutput  = flag.String("output", "", "Telemetry output directory")
	flagFrames  = flag.Int("frames", 0, "Number of frames to evaluate")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagProfile != "" {
		cfg.Engine.Profile = *flagProfile
	}
	if *flagGrid > 0 {
		cfg.Engine.GridSize = *flagGrid
	}
	if *flagWorkers > 0 {
		cfg.Engine.Workers = *flagWorkers
	}
	if *flagOutput != "" {
		cfg.Telemetry.OutputDir = *flagOutput
	}
	if *flagFrames > 0 {
		cfg.Demo.Frames = *flagFrames
	}
}
