// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Assets    AssetsConfig    `yaml:"assets"`
	Camera    CameraConfig    `yaml:"camera"`
	Demo      DemoConfig      `yaml:"demo"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// EngineConfig holds grid and evaluation settings.
type EngineConfig struct {
	// Profile selects the network configuration: "encoded" (positional
	// encoding + resonance orbs) or "raw" (bare coordinate inputs).
	Profile     string  `yaml:"profile"`
	GridSize    int     `yaml:"grid_size"`    // vertices per side
	GridSpacing float32 `yaml:"grid_spacing"` // world units between vertices
	Workers     int     `yaml:"workers"`      // 0 = GOMAXPROCS
}

// AssetsConfig holds weight asset file paths.
type AssetsConfig struct {
	TerrainWeights string `yaml:"terrain_weights"`
	ColorWeights   string `yaml:"color_weights"`
}

// CameraConfig holds the demo camera placement.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	FovY   float32    `yaml:"fov_y"` // degrees
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

// DemoConfig drives the offline evaluation run.
type DemoConfig struct {
	Frames        int     `yaml:"frames"`
	TimeStep      float32 `yaml:"time_step"`      // seconds per frame
	SnapshotDir   string  `yaml:"snapshot_dir"`   // empty = disabled
	SnapshotEvery int     `yaml:"snapshot_every"` // frames between snapshots
}

// TelemetryConfig holds evaluation stats output settings.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty = disabled
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Profile:     "encoded",
			GridSize:    128,
			GridSpacing: 0.25,
			Workers:     0,
		},
		Assets: AssetsConfig{
			TerrainWeights: "assets/terrain.nnw",
			ColorWeights:   "assets/color.nnw",
		},
		Camera: CameraConfig{
			Eye:    [3]float32{0, 12, 20},
			Target: [3]float32{0, 0, 0},
			FovY:   60,
			Near:   0.1,
			Far:    500,
		},
		Demo: DemoConfig{
			Frames:        120,
			TimeStep:      1.0 / 60.0,
			SnapshotDir:   "snapshots",
			SnapshotEvery: 30,
		},
		Telemetry: TelemetryConfig{
			OutputDir: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
