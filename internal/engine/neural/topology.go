package neural

import "github.com/Faultbox/neuraterra/pkg/formats"

// Network dimensions per profile. The encoded profile feeds positionally
// encoded coordinates to both networks; the raw profile feeds bare
// coordinates and uses a narrower color network.
const (
	// Terrain network: posEnc(x) ++ posEnc(z) ++ time ++ playerInfluence,
	// or x ++ z ++ time ++ playerInfluence in the raw profile.
	TerrainInputEncoded = 2*FeaturesPerCoord + 2 // 16
	TerrainInputRaw     = 4
	TerrainHidden       = 32
	TerrainOutput       = 4 // height, normalX, normalY, normalZ

	// Color network: posEnc(x,y,z) ++ normal ++ viewDir ++ time,
	// or x,y,z ++ normal ++ viewDir ++ time in the raw profile.
	ColorInputEncoded  = 3*FeaturesPerCoord + 7 // 28
	ColorInputRaw      = 10
	ColorHiddenEncoded = 24
	ColorHiddenRaw     = 16
	ColorOutput        = 3 // r, g, b
)

// maxLayerWidth bounds every layer width across all topologies, sizing the
// forward-pass scratch buffers.
const maxLayerWidth = 32

// Layer describes one affine layer of a feed-forward network.
type Layer struct {
	In  int
	Out int
}

// WeightCount returns the flat element count of the layer:
// an In×Out row-major weight matrix followed by an Out-length bias vector.
func (l Layer) WeightCount() int {
	return l.In*l.Out + l.Out
}

// Topology is the ordered layer list of a feed-forward network.
type Topology []Layer

// WeightCount returns the exact flat buffer length the topology requires.
func (t Topology) WeightCount() int {
	total := 0
	for _, l := range t {
		total += l.WeightCount()
	}
	return total
}

// InputSize returns the input vector length the topology expects.
func (t Topology) InputSize() int {
	return t[0].In
}

// OutputSize returns the output vector length the topology produces.
func (t Topology) OutputSize() int {
	return t[len(t)-1].Out
}

// TerrainTopology returns the terrain network topology for a profile.
func TerrainTopology(profile formats.Profile) Topology {
	in := TerrainInputRaw
	if profile == formats.ProfileEncoded {
		in = TerrainInputEncoded
	}
	return Topology{
		{In: in, Out: TerrainHidden},
		{In: TerrainHidden, Out: TerrainHidden},
		{In: TerrainHidden, Out: TerrainOutput},
	}
}

// ColorTopology returns the color network topology for a profile.
func ColorTopology(profile formats.Profile) Topology {
	in, hidden := ColorInputRaw, ColorHiddenRaw
	if profile == formats.ProfileEncoded {
		in, hidden = ColorInputEncoded, ColorHiddenEncoded
	}
	return Topology{
		{In: in, Out: hidden},
		{In: hidden, Out: hidden},
		{In: hidden, Out: ColorOutput},
	}
}
