package scene

import (
	"github.com/Faultbox/neuraterra/pkg/formats"
	mathx "github.com/Faultbox/neuraterra/pkg/math"
)

// Camera describes the host camera for one frame.
type Camera struct {
	Eye    mathx.Vec3
	Target mathx.Vec3
	Up     mathx.Vec3
	FovY   float32 // radians
	Aspect float32
	Near   float32
	Far    float32
}

// FrameState is the fully assembled scene state for one frame. It is built
// by a single writer and must be complete before any evaluation reads it;
// after publication it is immutable for the remainder of the frame.
// Resonance is nil in the raw profile, which carries no orb data.
type FrameState struct {
	Uniforms  Uniforms
	Player    PlayerState
	Resonance *ResonanceData
}

// Aggregator packages per-frame host state into FrameState records. It does
// not run the networks. A single Aggregator is meant to be driven by one
// goroutine (the host frame loop); the records it produces are safe to share
// once published.
type Aggregator struct {
	profile     formats.Profile
	gridSize    float32
	gridSpacing float32
}

// NewAggregator creates an aggregator for the given profile and grid shape.
func NewAggregator(profile formats.Profile, gridSize, gridSpacing float32) *Aggregator {
	return &Aggregator{
		profile:     profile,
		gridSize:    gridSize,
		gridSpacing: gridSpacing,
	}
}

// Profile returns the configured profile.
func (a *Aggregator) Profile() formats.Profile {
	return a.profile
}

// BuildFrame assembles the frame records. The grid model transform is
// identity, so modelView is the camera view matrix. now is seconds since
// session start and must be non-decreasing across calls (host invariant).
// Orbs beyond MaxResonanceOrbs are dropped; entries past the count are
// zeroed so they are inert.
func (a *Aggregator) BuildFrame(cam Camera, player PlayerState, orbs []ResonanceOrb, now float32) *FrameState {
	view := mathx.LookAt(cam.Eye, cam.Target, cam.Up)
	proj := mathx.Perspective(cam.FovY, cam.Aspect, cam.Near, cam.Far)

	fs := &FrameState{
		Uniforms: Uniforms{
			ModelViewProjection: proj.Mul(view),
			ModelView:           view,
			NormalMatrix:        mathx.NormalMatrix(view),
			CameraPosition:      cam.Eye,
			Time:                now,
			GridSize:            a.gridSize,
			GridSpacing:         a.gridSpacing,
		},
		Player: player,
	}

	if a.profile == formats.ProfileEncoded {
		rd := &ResonanceData{CurrentTime: now}
		count := len(orbs)
		if count > MaxResonanceOrbs {
			count = MaxResonanceOrbs
		}
		copy(rd.Orbs[:count], orbs[:count])
		rd.OrbCount = int32(count)
		fs.Resonance = rd
	}

	return fs
}
