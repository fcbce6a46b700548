// Package shading implements the consumer-side post-processing the network
// evaluators deliberately do not do: normal renormalization, display
// clamping, non-finite sanitizing, and the resonance glow contribution.
package shading

import (
	mathx "github.com/Faultbox/neuraterra/pkg/math"
)

// Safe defaults substituted for non-finite network outputs.
var (
	// DefaultNormal is the fallback surface normal (+Y).
	DefaultNormal = mathx.Vec3{Y: 1}
	// NeutralGray is the fallback display color component.
	NeutralGray float32 = 0.5
)

// SafeHeight sanitizes a raw height: non-finite values become 0.
func SafeHeight(h float32) float32 {
	if !mathx.IsFinite(h) {
		return 0
	}
	return h
}

// SafeNormal renormalizes a raw network normal to unit length. The raw
// output is not guaranteed unit-length; a zero or non-finite vector falls
// back to DefaultNormal instead of producing NaN.
func SafeNormal(n mathx.Vec3) mathx.Vec3 {
	if !n.IsFinite() {
		return DefaultNormal
	}
	unit := n.Normalize()
	if unit == (mathx.Vec3{}) {
		return DefaultNormal
	}
	return unit
}

// ClampColor clamps a raw network color to [0,1] per component; non-finite
// components become NeutralGray.
func ClampColor(rgb [3]float32) [3]float32 {
	for i, c := range rgb {
		if !mathx.IsFinite(c) {
			rgb[i] = NeutralGray
			continue
		}
		rgb[i] = mathx.Clamp(c, 0, 1)
	}
	return rgb
}
