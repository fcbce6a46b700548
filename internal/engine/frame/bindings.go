// Package frame owns the per-frame evaluation cadence: the host binding
// contract, the publish-after-complete state handoff, and the CPU evaluation
// stage that runs the networks across the grid.
package frame

import (
	"encoding/binary"
	"math"
)

// BufferIndex identifies a slot in the stable index-to-resource binding
// contract the core exposes to the rendering layer.
type BufferIndex int

// Binding slots. Vertices and the two weight buffers are uploaded once;
// uniforms, player state and resonance are re-uploaded every frame.
// BufferResonance exists only in the encoded profile.
const (
	BufferVertices       BufferIndex = 0
	BufferUniforms       BufferIndex = 1
	BufferTerrainWeights BufferIndex = 2
	BufferColorWeights   BufferIndex = 3
	BufferPlayerState    BufferIndex = 4
	BufferResonance      BufferIndex = 5
)

// Vertex attribute slots.
const (
	AttrPosition = 0 // 3 floats
	AttrTexcoord = 1 // 2 floats
)

// Bindings is one frame's worth of upload-ready buffers, indexed per the
// binding contract. Resonance is nil in the raw profile.
type Bindings struct {
	Vertices       []byte
	Uniforms       []byte
	TerrainWeights []byte
	ColorWeights   []byte
	PlayerState    []byte
	Resonance      []byte
}

// At returns the buffer for a binding slot and whether the slot is bound.
func (b *Bindings) At(i BufferIndex) ([]byte, bool) {
	switch i {
	case BufferVertices:
		return b.Vertices, b.Vertices != nil
	case BufferUniforms:
		return b.Uniforms, b.Uniforms != nil
	case BufferTerrainWeights:
		return b.TerrainWeights, b.TerrainWeights != nil
	case BufferColorWeights:
		return b.ColorWeights, b.ColorWeights != nil
	case BufferPlayerState:
		return b.PlayerState, b.PlayerState != nil
	case BufferResonance:
		return b.Resonance, b.Resonance != nil
	default:
		return nil, false
	}
}

// marshalWeights serializes a flat weight buffer as little-endian float32s.
func marshalWeights(weights []float32) []byte {
	buf := make([]byte, len(weights)*4)
	for i, w := range weights {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(w))
	}
	return buf
}
