package scene

import (
	mathx "github.com/Faultbox/neuraterra/pkg/math"
)

// PlayerStateSize is the marshaled size of the PlayerState record in bytes.
const PlayerStateSize = 32

// PlayerState is the per-frame player interaction record.
// InteractionStrength is a unitless scalar, typically in [0,1] but not
// clamped by this layer.
type PlayerState struct {
	Position            mathx.Vec3
	InfluenceRadius     float32 // world units, >= 0
	InteractionStrength float32
	Interacting         bool
}

// Marshal serializes the record for GPU upload. Layout (byte offsets):
//
//	 0  float3 position
//	12  influenceRadius
//	16  interactionStrength
//	20  isInteracting (int32, boolean-as-integer)
//	24  8 pad bytes
func (p *PlayerState) Marshal() []byte {
	buf := make([]byte, PlayerStateSize)

	putF32(buf, 0, p.Position.X)
	putF32(buf, 4, p.Position.Y)
	putF32(buf, 8, p.Position.Z)
	putF32(buf, 12, p.InfluenceRadius)
	putF32(buf, 16, p.InteractionStrength)
	if p.Interacting {
		putI32(buf, 20, 1)
	}

	return buf
}

// InfluenceFunc converts player state into the scalar influence the terrain
// network consumes at a surface point. The falloff shape is a policy of the
// network's caller, not of the network.
type InfluenceFunc func(p PlayerState, at mathx.Vec3) float32

// LinearInfluence is the default influence policy: zero when not interacting
// or the radius is degenerate, otherwise strength scaled by linear distance
// falloff and clamped to [0, 1].
func LinearInfluence(p PlayerState, at mathx.Vec3) float32 {
	if !p.Interacting || p.InfluenceRadius <= 0 {
		return 0
	}
	d := at.Distance(p.Position)
	if d >= p.InfluenceRadius {
		return 0
	}
	return mathx.Clamp(p.InteractionStrength*(1-d/p.InfluenceRadius), 0, 1)
}
