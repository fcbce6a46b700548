package viz

import (
	"math"

	"github.com/Faultbox/neuraterra/internal/engine/scene"
	mathx "github.com/Faultbox/neuraterra/pkg/math"
)

// mathxUp is the world up axis used by the demo camera.
var mathxUp = mathx.Vec3{Y: 1}

func vec3(a [3]float32) mathx.Vec3 {
	return mathx.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// playerAt moves the demo player on a circle a quarter of the grid extent
// wide, toggling interaction on for one second out of every two.
func playerAt(now, extent float32) scene.PlayerState {
	r := float64(extent) / 4
	angle := float64(now) * 0.5

	return scene.PlayerState{
		Position: mathx.Vec3{
			X: float32(r * math.Cos(angle)),
			Z: float32(r * math.Sin(angle)),
		},
		InfluenceRadius:     extent / 8,
		InteractionStrength: 1,
		Interacting:         math.Mod(float64(now), 2) < 1,
	}
}

// orbsAt places three orbs on a slow orbit above the surface, each with a
// staggered spawn time so their glow pulses out of phase.
func orbsAt(now, extent float32) []scene.ResonanceOrb {
	const count = 3
	orbs := make([]scene.ResonanceOrb, count)

	r := float64(extent) / 3
	for i := range orbs {
		phase := float64(i) * 2 * math.Pi / count
		angle := float64(now)*0.3 + phase

		orbs[i] = scene.ResonanceOrb{
			Position: mathx.Vec3{
				X: float32(r * math.Cos(angle)),
				Y: 1.5,
				Z: float32(r * math.Sin(angle)),
			},
			Intensity: 0.8,
			Color:     orbPalette[i%len(orbPalette)],
			SpawnTime: float32(i) * 0.7,
		}
	}
	return orbs
}

var orbPalette = [][3]float32{
	{0.9, 0.4, 0.2},
	{0.2, 0.7, 0.9},
	{0.5, 0.9, 0.3},
}
