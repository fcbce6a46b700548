// Package neural implements the implicit neural surface evaluators: the
// positional encoder, the weight store, and the terrain and color networks.
package neural

import "math"

// EncodeBands is the number of sinusoidal frequency bands per coordinate.
const EncodeBands = 3

// FeaturesPerCoord is the encoded feature count per coordinate:
// the raw value plus a sin/cos pair per band.
const FeaturesPerCoord = 2*EncodeBands + 1

// EncodeCoord appends the positional encoding of c to dst and returns the
// extended slice: [c, sin(c), cos(c), sin(2c), cos(2c), sin(4c), cos(4c)].
// Frequencies double per band. Deterministic and pure; no renormalization is
// performed, so very large coordinates alias (wrap around) by design of the
// encoding, not silently fixed here.
func EncodeCoord(dst []float32, c float32) []float32 {
	dst = append(dst, c)
	freq := float64(c)
	for band := 0; band < EncodeBands; band++ {
		s, cs := math.Sincos(freq)
		dst = append(dst, float32(s), float32(cs))
		freq *= 2
	}
	return dst
}
