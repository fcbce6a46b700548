// Package viz implements the offline evaluation loop: it loads the weight
// bundles, drives per-frame scene state through the orchestrator, and emits
// snapshots and telemetry.
package viz

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/neuraterra/internal/config"
	"github.com/Faultbox/neuraterra/internal/engine/frame"
	"github.com/Faultbox/neuraterra/internal/engine/neural"
	"github.com/Faultbox/neuraterra/internal/engine/scene"
	"github.com/Faultbox/neuraterra/internal/engine/snapshot"
	"github.com/Faultbox/neuraterra/internal/engine/terrain"
	"github.com/Faultbox/neuraterra/internal/logger"
	"github.com/Faultbox/neuraterra/internal/telemetry"
	"github.com/Faultbox/neuraterra/pkg/formats"
)

// Viz is one configured evaluation session.
type Viz struct {
	cfg     *config.Config
	profile formats.Profile

	grid *terrain.Grid
	agg  *scene.Aggregator
	orch *frame.Orchestrator

	snap  *snapshot.Writer
	stats *telemetry.Collector
}

// New creates a session from configuration: parses the profile, loads both
// weight bundles, and builds the grid and orchestrator.
func New(cfg *config.Config) (*Viz, error) {
	profile, err := cfg.Engine.ParseProfile()
	if err != nil {
		return nil, err
	}

	logger.Info("initializing session",
		zap.Stringer("profile", profile),
		zap.Int("grid_size", cfg.Engine.GridSize),
		zap.Float32("grid_spacing", cfg.Engine.GridSpacing),
	)

	terrainNet, err := loadTerrainNetwork(cfg.Assets.TerrainWeights, profile)
	if err != nil {
		return nil, fmt.Errorf("loading terrain weights: %w", err)
	}
	colorNet, err := loadColorNetwork(cfg.Assets.ColorWeights, profile)
	if err != nil {
		return nil, fmt.Errorf("loading color weights: %w", err)
	}

	grid := terrain.BuildGrid(cfg.Engine.GridSize, cfg.Engine.GridSpacing)

	var opts []frame.Option
	if cfg.Engine.Workers > 0 {
		opts = append(opts, frame.WithWorkers(cfg.Engine.Workers))
	}

	v := &Viz{
		cfg:     cfg,
		profile: profile,
		grid:    grid,
		agg:     scene.NewAggregator(profile, float32(grid.Size), grid.Spacing),
		orch:    frame.New(grid, terrainNet, colorNet, opts...),
		stats:   telemetry.NewCollector(),
	}

	if cfg.Demo.SnapshotDir != "" && cfg.Demo.SnapshotEvery > 0 {
		v.snap = snapshot.NewWriter(cfg.Demo.SnapshotDir, profile.String())
	}

	logger.Info("session initialized",
		zap.Int("vertices", len(grid.Vertices)),
		zap.Int("indices", len(grid.Indices)),
	)
	return v, nil
}

// Run evaluates the configured number of frames, publishing each one and
// recording telemetry. Snapshots are written at the configured cadence.
func (v *Viz) Run() error {
	frames := v.cfg.Demo.Frames
	dt := v.cfg.Demo.TimeStep
	if dt <= 0 {
		dt = 1.0 / 60.0
	}

	extent := float32(v.grid.Size-1) * v.grid.Spacing

	logger.Info("starting evaluation loop", zap.Int("frames", frames))

	for i := 0; i < frames; i++ {
		now := float32(i) * dt

		fs := v.agg.BuildFrame(v.camera(), playerAt(now, extent), orbsAt(now, extent), now)

		res := v.orch.Evaluate(fs)
		v.orch.Publish(res)

		v.stats.Record(telemetry.FrameStats{
			Frame:     i,
			Time:      now,
			Vertices:  len(res.Outputs),
			EvalUs:    res.EvalDuration.Microseconds(),
			NonFinite: res.NonFinite,
			MinHeight: res.MinHeight,
			MaxHeight: res.MaxHeight,
		})

		if res.NonFinite > 0 {
			logger.Warn("non-finite network outputs sanitized",
				zap.Int("frame", i),
				zap.Int("count", res.NonFinite),
			)
		}

		if i == 0 {
			v.logBindings(fs)
		}

		if v.snap != nil && i%v.cfg.Demo.SnapshotEvery == 0 {
			if err := v.writeSnapshots(res, i); err != nil {
				return err
			}
		}
	}

	logger.Info("evaluation loop complete",
		zap.Int("frames", frames),
		zap.Duration("total_eval", v.stats.TotalEvalTime()),
	)

	return v.flushTelemetry()
}

// Current returns the most recently published frame.
func (v *Viz) Current() *frame.Result {
	return v.orch.Current()
}

// camera returns the configured demo camera. Snapshots are square so the
// aspect ratio is 1.
func (v *Viz) camera() scene.Camera {
	cc := v.cfg.Camera
	return scene.Camera{
		Eye:    vec3(cc.Eye),
		Target: vec3(cc.Target),
		Up:     mathxUp,
		FovY:   cc.FovY * math.Pi / 180,
		Aspect: 1,
		Near:   cc.Near,
		Far:    cc.Far,
	}
}

func (v *Viz) logBindings(fs *scene.FrameState) {
	b := v.orch.Bindings(fs)
	total := 0
	for i := frame.BufferVertices; i <= frame.BufferResonance; i++ {
		if buf, ok := b.At(i); ok {
			total += len(buf)
		}
	}
	logger.Debug("frame bindings assembled", zap.Int("total_bytes", total))
}

func (v *Viz) writeSnapshots(res *frame.Result, i int) error {
	name, err := v.snap.SaveColor(v.grid, res, i)
	if err != nil {
		return fmt.Errorf("writing color snapshot: %w", err)
	}
	if _, err := v.snap.SaveHeight(v.grid, res, i); err != nil {
		return fmt.Errorf("writing height snapshot: %w", err)
	}
	logger.Debug("snapshot written", zap.String("file", name))
	return nil
}

func (v *Viz) flushTelemetry() error {
	if v.cfg.Telemetry.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(v.cfg.Telemetry.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating telemetry dir: %w", err)
	}
	path := filepath.Join(v.cfg.Telemetry.OutputDir, "frames.csv")
	if err := v.stats.SaveCSV(path); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	logger.Info("telemetry written", zap.String("file", path), zap.Int("samples", v.stats.Len()))
	return nil
}

func loadTerrainNetwork(path string, profile formats.Profile) (*neural.TerrainNetwork, error) {
	bundle, err := loadBundle(path)
	if err != nil {
		return nil, err
	}
	return neural.NewTerrainNetwork(bundle, profile)
}

func loadColorNetwork(path string, profile formats.Profile) (*neural.ColorNetwork, error) {
	bundle, err := loadBundle(path)
	if err != nil {
		return nil, err
	}
	return neural.NewColorNetwork(bundle, profile)
}

func loadBundle(path string) (*formats.NNW, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	bundle, err := formats.ParseNNW(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	logger.Debug("weight bundle loaded",
		zap.String("path", path),
		zap.Stringer("kind", bundle.Kind),
		zap.Stringer("profile", bundle.Profile),
		zap.Int("weights", len(bundle.Weights)),
	)
	return bundle, nil
}
