// Package scene assembles per-frame host state (camera, player, resonance
// orbs) into the fixed-layout records the evaluation stage consumes. All
// records marshal to little-endian 32-bit IEEE-754 floats with explicit
// padding; matrices are column-major.
package scene

import (
	"encoding/binary"
	"math"

	mathx "github.com/Faultbox/neuraterra/pkg/math"
)

// UniformsSize is the marshaled size of the Uniforms record in bytes.
const UniformsSize = 208

// Uniforms is the per-frame camera and grid state record.
// Invariant: matrices are consistent with the current camera each frame, and
// Time is strictly non-decreasing across frames within a session.
type Uniforms struct {
	ModelViewProjection mathx.Mat4
	ModelView           mathx.Mat4
	NormalMatrix        mathx.Mat3
	CameraPosition      mathx.Vec3
	Time                float32
	GridSize            float32
	GridSpacing         float32
}

// Marshal serializes the record for GPU upload. Layout (byte offsets):
//
//	  0  mat4 modelViewProjection (column-major)
//	 64  mat4 modelView
//	128  mat3 normalMatrix, 3 columns padded to 16 bytes each
//	176  float3 cameraPosition + 4 pad bytes
//	192  time, gridSize, gridSpacing + 4 pad bytes
func (u *Uniforms) Marshal() []byte {
	buf := make([]byte, UniformsSize)

	for i, v := range u.ModelViewProjection {
		putF32(buf, i*4, v)
	}
	for i, v := range u.ModelView {
		putF32(buf, 64+i*4, v)
	}
	// Each 3-float column gets a 4-byte tail pad.
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			putF32(buf, 128+col*16+row*4, u.NormalMatrix[col*3+row])
		}
	}
	putF32(buf, 176, u.CameraPosition.X)
	putF32(buf, 180, u.CameraPosition.Y)
	putF32(buf, 184, u.CameraPosition.Z)
	putF32(buf, 192, u.Time)
	putF32(buf, 196, u.GridSize)
	putF32(buf, 200, u.GridSpacing)

	return buf
}

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

func putI32(buf []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(v))
}
