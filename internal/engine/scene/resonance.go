package scene

import (
	mathx "github.com/Faultbox/neuraterra/pkg/math"
)

// MaxResonanceOrbs is the maximum number of orbs a frame carries.
const MaxResonanceOrbs = 5

// Marshaled record sizes in bytes.
const (
	ResonanceOrbSize  = 32
	ResonanceDataSize = MaxResonanceOrbs*ResonanceOrbSize + 16
)

// ResonanceOrb is a transient point-influence source contributing to shading.
type ResonanceOrb struct {
	Position  mathx.Vec3
	Intensity float32 // >= 0
	Color     [3]float32
	SpawnTime float32
}

// ResonanceData is the per-frame orb set record.
// Invariant: OrbCount never exceeds MaxResonanceOrbs, and entries at index
// >= OrbCount are inert; consumers must not read them.
type ResonanceData struct {
	Orbs        [MaxResonanceOrbs]ResonanceOrb
	OrbCount    int32
	CurrentTime float32
}

// Active returns the live orb entries.
func (r *ResonanceData) Active() []ResonanceOrb {
	return r.Orbs[:r.OrbCount]
}

// Marshal serializes the record for GPU upload. Layout (byte offsets):
//
//	  0  5 orbs of 32 bytes each:
//	     float3 position, intensity, float3 color, spawnTime
//	160  orbCount (int32)
//	164  currentTime
//	168  8 pad bytes
func (r *ResonanceData) Marshal() []byte {
	buf := make([]byte, ResonanceDataSize)

	for i := range r.Orbs {
		orb := &r.Orbs[i]
		off := i * ResonanceOrbSize
		putF32(buf, off+0, orb.Position.X)
		putF32(buf, off+4, orb.Position.Y)
		putF32(buf, off+8, orb.Position.Z)
		putF32(buf, off+12, orb.Intensity)
		putF32(buf, off+16, orb.Color[0])
		putF32(buf, off+20, orb.Color[1])
		putF32(buf, off+24, orb.Color[2])
		putF32(buf, off+28, orb.SpawnTime)
	}
	putI32(buf, MaxResonanceOrbs*ResonanceOrbSize, r.OrbCount)
	putF32(buf, MaxResonanceOrbs*ResonanceOrbSize+4, r.CurrentTime)

	return buf
}
