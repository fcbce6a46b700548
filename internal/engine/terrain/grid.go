// Package terrain builds the static evaluation grid the neural surface is
// sampled over. The mesh carries only position and texcoord; height, normal
// and color come from the networks every frame.
package terrain

import (
	"encoding/binary"
	"math"
)

// GridVertexSize is the packed size of one vertex in bytes
// (3 position floats + 2 texcoord floats, no padding).
const GridVertexSize = 20

// GridVertex is the mesh-side anchor the networks evaluate at.
// Vertex attribute slots: 0 = position, 1 = texcoord.
type GridVertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// Bounds holds the axis-aligned bounding box of the grid.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Grid holds the complete evaluation mesh. It is built once and immutable
// thereafter; per-frame displacement happens in the evaluation stage.
type Grid struct {
	Vertices []GridVertex
	Indices  []uint32
	Size     int     // vertices per side
	Spacing  float32 // world units between adjacent vertices
	Bounds   Bounds
}

// BuildGrid creates a size x size vertex grid on the XZ plane centered at
// the origin. Texcoords span [0,1] across the grid; indices wind two
// counter-clockwise triangles per cell.
func BuildGrid(size int, spacing float32) *Grid {
	if size < 2 {
		size = 2
	}

	half := float32(size-1) * spacing / 2
	vertices := make([]GridVertex, 0, size*size)
	for iz := 0; iz < size; iz++ {
		for ix := 0; ix < size; ix++ {
			vertices = append(vertices, GridVertex{
				Position: [3]float32{
					float32(ix)*spacing - half,
					0,
					float32(iz)*spacing - half,
				},
				TexCoord: [2]float32{
					float32(ix) / float32(size-1),
					float32(iz) / float32(size-1),
				},
			})
		}
	}

	indices := make([]uint32, 0, (size-1)*(size-1)*6)
	for iz := 0; iz < size-1; iz++ {
		for ix := 0; ix < size-1; ix++ {
			i0 := uint32(iz*size + ix)
			i1 := i0 + 1
			i2 := i0 + uint32(size)
			i3 := i2 + 1
			indices = append(indices, i0, i2, i1, i1, i2, i3)
		}
	}

	return &Grid{
		Vertices: vertices,
		Indices:  indices,
		Size:     size,
		Spacing:  spacing,
		Bounds: Bounds{
			Min: [3]float32{-half, 0, -half},
			Max: [3]float32{half, 0, half},
		},
	}
}

// MarshalVertices serializes the vertex stream for GPU upload: packed
// little-endian position + texcoord per vertex, GridVertexSize bytes each.
func (g *Grid) MarshalVertices() []byte {
	buf := make([]byte, len(g.Vertices)*GridVertexSize)
	for i, v := range g.Vertices {
		off := i * GridVertexSize
		binary.LittleEndian.PutUint32(buf[off+0:], math.Float32bits(v.Position[0]))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(v.Position[1]))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(v.Position[2]))
		binary.LittleEndian.PutUint32(buf[off+12:], math.Float32bits(v.TexCoord[0]))
		binary.LittleEndian.PutUint32(buf[off+16:], math.Float32bits(v.TexCoord[1]))
	}
	return buf
}
