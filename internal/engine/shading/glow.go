package shading

import (
	"math"

	"github.com/Faultbox/neuraterra/internal/engine/scene"
	mathx "github.com/Faultbox/neuraterra/pkg/math"
)

// GlowFunc computes the additive resonance contribution to a surface color
// at a world point. It runs after the color network, never inside its
// forward pass, so the coupling stays swappable.
type GlowFunc func(point mathx.Vec3, res *scene.ResonanceData) [3]float32

// glowPulseRate is the angular rate of the default glow pulse in rad/s.
const glowPulseRate = 2.0

// OrbGlow is the default glow contribution: per active orb, the orb color
// scaled by intensity, an inverse-square distance attenuation, and a gentle
// pulse driven by the orb's age. Inert entries past OrbCount are never read.
func OrbGlow(point mathx.Vec3, res *scene.ResonanceData) [3]float32 {
	var glow [3]float32
	if res == nil {
		return glow
	}

	for _, orb := range res.Active() {
		d := point.Distance(orb.Position)
		atten := orb.Intensity / (1 + d*d)

		age := res.CurrentTime - orb.SpawnTime
		pulse := 0.75 + 0.25*float32(math.Sin(float64(age)*glowPulseRate))

		glow[0] += orb.Color[0] * atten * pulse
		glow[1] += orb.Color[1] * atten * pulse
		glow[2] += orb.Color[2] * atten * pulse
	}
	return glow
}

// AddGlow adds a glow contribution to a raw color before display clamping.
func AddGlow(rgb, glow [3]float32) [3]float32 {
	return [3]float32{rgb[0] + glow[0], rgb[1] + glow[1], rgb[2] + glow[2]}
}
