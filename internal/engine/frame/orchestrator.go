package frame

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Faultbox/neuraterra/internal/engine/neural"
	"github.com/Faultbox/neuraterra/internal/engine/scene"
	"github.com/Faultbox/neuraterra/internal/engine/shading"
	"github.com/Faultbox/neuraterra/internal/engine/terrain"
	mathx "github.com/Faultbox/neuraterra/pkg/math"
)

// parallelThreshold is the minimum vertex count to use parallel evaluation.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 256

// VertexOutput is the evaluated surface state at one grid vertex:
// displaced world position, unit normal, and display-ready color.
type VertexOutput struct {
	Position mathx.Vec3
	Normal   mathx.Vec3
	Color    [3]float32
}

// Result is one fully evaluated frame. Once published it is immutable.
type Result struct {
	State   *scene.FrameState
	Outputs []VertexOutput

	EvalDuration time.Duration
	NonFinite    int // vertices whose raw network output was NaN/Inf
	MinHeight    float32
	MaxHeight    float32
}

// Orchestrator drives per-frame evaluation: it owns the static grid and
// weight uploads, runs both networks across the grid, applies the consumer
// post-processing, and publishes completed frames through a single
// synchronization point.
type Orchestrator struct {
	grid       *terrain.Grid
	terrainNet *neural.TerrainNetwork
	colorNet   *neural.ColorNetwork
	influence  scene.InfluenceFunc
	glow       shading.GlowFunc
	workers    int

	// Static upload buffers, marshaled once.
	vertexStream   []byte
	terrainWeights []byte
	colorWeights   []byte

	published atomic.Pointer[Result]
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithInfluence overrides the default player-influence policy.
func WithInfluence(f scene.InfluenceFunc) Option {
	return func(o *Orchestrator) { o.influence = f }
}

// WithGlow overrides the default resonance glow contribution.
func WithGlow(f shading.GlowFunc) Option {
	return func(o *Orchestrator) { o.glow = f }
}

// WithWorkers fixes the evaluation worker count (default GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// New creates an orchestrator over a static grid and a loaded network pair.
func New(grid *terrain.Grid, terrainNet *neural.TerrainNetwork, colorNet *neural.ColorNetwork, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		grid:           grid,
		terrainNet:     terrainNet,
		colorNet:       colorNet,
		influence:      scene.LinearInfluence,
		glow:           shading.OrbGlow,
		workers:        runtime.GOMAXPROCS(0),
		vertexStream:   grid.MarshalVertices(),
		terrainWeights: marshalWeights(terrainNet.Store().Flat()),
		colorWeights:   marshalWeights(colorNet.Store().Flat()),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Bindings assembles the upload buffers for one frame per the binding
// contract. Static slots reuse the buffers marshaled at construction.
func (o *Orchestrator) Bindings(fs *scene.FrameState) *Bindings {
	b := &Bindings{
		Vertices:       o.vertexStream,
		Uniforms:       fs.Uniforms.Marshal(),
		TerrainWeights: o.terrainWeights,
		ColorWeights:   o.colorWeights,
		PlayerState:    fs.Player.Marshal(),
	}
	if fs.Resonance != nil {
		b.Resonance = fs.Resonance.Marshal()
	}
	return b
}

// Evaluate runs both networks across every grid vertex for one frame.
// The frame state must be fully assembled before the call; evaluation only
// reads it. Safe to call concurrently with readers of previously published
// results, not with itself.
func (o *Orchestrator) Evaluate(fs *scene.FrameState) *Result {
	start := time.Now()

	res := &Result{
		State:   fs,
		Outputs: make([]VertexOutput, len(o.grid.Vertices)),
	}

	n := len(o.grid.Vertices)
	workers := o.workers
	if n < parallelThreshold || workers < 2 {
		stats := o.evaluateRange(fs, res.Outputs, 0, n)
		res.NonFinite = stats.nonFinite
		res.MinHeight, res.MaxHeight = stats.minHeight, stats.maxHeight
	} else {
		chunk := (n + workers - 1) / workers
		partials := make([]rangeStats, workers)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			if lo >= hi {
				partials[w] = emptyRangeStats()
				continue
			}
			wg.Add(1)
			go func(w, lo, hi int) {
				defer wg.Done()
				partials[w] = o.evaluateRange(fs, res.Outputs, lo, hi)
			}(w, lo, hi)
		}
		wg.Wait()

		combined := emptyRangeStats()
		for _, p := range partials {
			combined.merge(p)
		}
		res.NonFinite = combined.nonFinite
		res.MinHeight, res.MaxHeight = combined.minHeight, combined.maxHeight
	}

	res.EvalDuration = time.Since(start)
	return res
}

// Publish makes a completed frame visible to readers. This is the single
// per-frame synchronization point: a frame is published only after it is
// fully evaluated, and readers only ever see complete frames.
func (o *Orchestrator) Publish(res *Result) {
	o.published.Store(res)
}

// Current returns the most recently published frame, or nil before the
// first publish.
func (o *Orchestrator) Current() *Result {
	return o.published.Load()
}

type rangeStats struct {
	nonFinite int
	minHeight float32
	maxHeight float32
}

func emptyRangeStats() rangeStats {
	return rangeStats{minHeight: float32(1e30), maxHeight: float32(-1e30)}
}

func (s *rangeStats) merge(other rangeStats) {
	s.nonFinite += other.nonFinite
	if other.minHeight < s.minHeight {
		s.minHeight = other.minHeight
	}
	if other.maxHeight > s.maxHeight {
		s.maxHeight = other.maxHeight
	}
}

// evaluateRange evaluates vertices [lo, hi). Each iteration reads only its
// own vertex plus the shared immutable weight stores and frame state, so
// ranges run concurrently without locking.
func (o *Orchestrator) evaluateRange(fs *scene.FrameState, out []VertexOutput, lo, hi int) rangeStats {
	stats := emptyRangeStats()
	now := fs.Uniforms.Time
	camera := fs.Uniforms.CameraPosition

	for i := lo; i < hi; i++ {
		v := o.grid.Vertices[i]
		at := mathx.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}

		influence := o.influence(fs.Player, at)
		sample := o.terrainNet.Evaluate(at.X, at.Z, now, influence)

		if !mathx.IsFinite(sample.Height) || !sample.Normal.IsFinite() {
			stats.nonFinite++
		}

		height := shading.SafeHeight(sample.Height)
		normal := shading.SafeNormal(sample.Normal)
		pos := mathx.Vec3{X: at.X, Y: height, Z: at.Z}
		viewDir := shading.SafeNormal(camera.Sub(pos))

		raw := o.colorNet.Evaluate(pos, normal, viewDir, now)
		if !mathx.IsFinite(raw[0]) || !mathx.IsFinite(raw[1]) || !mathx.IsFinite(raw[2]) {
			stats.nonFinite++
		}
		color := shading.ClampColor(shading.AddGlow(raw, o.glow(pos, fs.Resonance)))

		out[i] = VertexOutput{Position: pos, Normal: normal, Color: color}

		if height < stats.minHeight {
			stats.minHeight = height
		}
		if height > stats.maxHeight {
			stats.maxHeight = height
		}
	}
	return stats
}
