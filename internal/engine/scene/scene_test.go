package scene

import (
	"encoding/binary"
	"math"
	"testing"

	mathx "github.com/Faultbox/neuraterra/pkg/math"
	"github.com/Faultbox/neuraterra/pkg/formats"
)

func f32At(t *testing.T, buf []byte, off int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
}

func TestUniformsMarshalLayout(t *testing.T) {
	u := Uniforms{
		ModelViewProjection: mathx.Identity(),
		ModelView:           mathx.Translate(1, 2, 3),
		NormalMatrix:        mathx.Identity3(),
		CameraPosition:      mathx.Vec3{X: 7, Y: 8, Z: 9},
		Time:                1.5,
		GridSize:            64,
		GridSpacing:         0.25,
	}

	buf := u.Marshal()
	if len(buf) != UniformsSize {
		t.Fatalf("marshaled size = %d, want %d", len(buf), UniformsSize)
	}

	// MVP identity, column-major: m[0] leads the first column.
	if f32At(t, buf, 0) != 1 {
		t.Errorf("mvp[0] = %v, want 1", f32At(t, buf, 0))
	}
	// ModelView translation column: m12..m14 at floats 12..14 of the matrix.
	if f32At(t, buf, 64+12*4) != 1 || f32At(t, buf, 64+13*4) != 2 || f32At(t, buf, 64+14*4) != 3 {
		t.Error("modelView translation column not at expected offsets")
	}
	// Normal matrix columns padded to 16 bytes: diagonal at 128, 148, 168.
	if f32At(t, buf, 128) != 1 || f32At(t, buf, 128+16+4) != 1 || f32At(t, buf, 128+32+8) != 1 {
		t.Error("normal matrix diagonal not at padded column offsets")
	}
	// Padding after each column must be untouched (zero).
	if f32At(t, buf, 128+12) != 0 || f32At(t, buf, 128+16+12) != 0 {
		t.Error("normal matrix column padding should be zero")
	}
	// Camera position and scalar tail.
	if f32At(t, buf, 176) != 7 || f32At(t, buf, 180) != 8 || f32At(t, buf, 184) != 9 {
		t.Error("camera position not at offset 176")
	}
	if f32At(t, buf, 192) != 1.5 {
		t.Errorf("time = %v, want 1.5", f32At(t, buf, 192))
	}
	if f32At(t, buf, 196) != 64 {
		t.Errorf("gridSize = %v, want 64", f32At(t, buf, 196))
	}
	if f32At(t, buf, 200) != 0.25 {
		t.Errorf("gridSpacing = %v, want 0.25", f32At(t, buf, 200))
	}
}

func TestPlayerStateMarshalLayout(t *testing.T) {
	p := PlayerState{
		Position:            mathx.Vec3{X: 1, Y: 2, Z: 3},
		InfluenceRadius:     5,
		InteractionStrength: 0.75,
		Interacting:         true,
	}

	buf := p.Marshal()
	if len(buf) != PlayerStateSize {
		t.Fatalf("marshaled size = %d, want %d", len(buf), PlayerStateSize)
	}
	if f32At(t, buf, 0) != 1 || f32At(t, buf, 4) != 2 || f32At(t, buf, 8) != 3 {
		t.Error("position not at offset 0")
	}
	if f32At(t, buf, 12) != 5 {
		t.Errorf("influenceRadius = %v, want 5", f32At(t, buf, 12))
	}
	if f32At(t, buf, 16) != 0.75 {
		t.Errorf("interactionStrength = %v, want 0.75", f32At(t, buf, 16))
	}
	if got := int32(binary.LittleEndian.Uint32(buf[20:24])); got != 1 {
		t.Errorf("isInteracting = %d, want 1", got)
	}

	p.Interacting = false
	buf = p.Marshal()
	if got := int32(binary.LittleEndian.Uint32(buf[20:24])); got != 0 {
		t.Errorf("isInteracting = %d, want 0", got)
	}
}

func TestResonanceDataMarshalLayout(t *testing.T) {
	rd := ResonanceData{OrbCount: 2, CurrentTime: 9.5}
	rd.Orbs[0] = ResonanceOrb{
		Position:  mathx.Vec3{X: 1, Y: 2, Z: 3},
		Intensity: 4,
		Color:     [3]float32{0.1, 0.2, 0.3},
		SpawnTime: 5,
	}
	rd.Orbs[1] = ResonanceOrb{Position: mathx.Vec3{X: -1}, Intensity: 1}

	buf := rd.Marshal()
	if len(buf) != ResonanceDataSize {
		t.Fatalf("marshaled size = %d, want %d", len(buf), ResonanceDataSize)
	}
	if f32At(t, buf, 0) != 1 || f32At(t, buf, 12) != 4 || f32At(t, buf, 28) != 5 {
		t.Error("orb 0 fields not at expected offsets")
	}
	if f32At(t, buf, 16) != 0.1 || f32At(t, buf, 24) != 0.3 {
		t.Error("orb 0 color not at expected offsets")
	}
	if f32At(t, buf, 32) != -1 {
		t.Error("orb 1 not at stride 32")
	}
	if got := int32(binary.LittleEndian.Uint32(buf[160:164])); got != 2 {
		t.Errorf("orbCount = %d, want 2", got)
	}
	if f32At(t, buf, 164) != 9.5 {
		t.Errorf("currentTime = %v, want 9.5", f32At(t, buf, 164))
	}
}

func TestLinearInfluence(t *testing.T) {
	p := PlayerState{
		Position:            mathx.Vec3{},
		InfluenceRadius:     10,
		InteractionStrength: 1,
		Interacting:         true,
	}

	if got := LinearInfluence(p, mathx.Vec3{}); got != 1 {
		t.Errorf("influence at player position = %v, want 1", got)
	}
	if got := LinearInfluence(p, mathx.Vec3{X: 5}); got != 0.5 {
		t.Errorf("influence at half radius = %v, want 0.5", got)
	}
	if got := LinearInfluence(p, mathx.Vec3{X: 10}); got != 0 {
		t.Errorf("influence at radius = %v, want 0", got)
	}
	if got := LinearInfluence(p, mathx.Vec3{X: 50}); got != 0 {
		t.Errorf("influence beyond radius = %v, want 0", got)
	}
}

func TestLinearInfluence_GatedByInteractingFlag(t *testing.T) {
	// Influence must be independent of interaction strength whenever the
	// player is not interacting.
	for _, strength := range []float32{0, 0.5, 1, 100} {
		p := PlayerState{
			InfluenceRadius:     10,
			InteractionStrength: strength,
			Interacting:         false,
		}
		if got := LinearInfluence(p, mathx.Vec3{X: 1}); got != 0 {
			t.Errorf("strength %v: influence = %v while not interacting, want 0", strength, got)
		}
	}
}

func TestLinearInfluence_DegenerateRadius(t *testing.T) {
	p := PlayerState{InteractionStrength: 1, Interacting: true}
	if got := LinearInfluence(p, mathx.Vec3{}); got != 0 {
		t.Errorf("influence with zero radius = %v, want 0", got)
	}
}

func TestLinearInfluence_ClampedToUnit(t *testing.T) {
	p := PlayerState{
		InfluenceRadius:     10,
		InteractionStrength: 50, // strength is not clamped upstream
		Interacting:         true,
	}
	if got := LinearInfluence(p, mathx.Vec3{X: 1}); got != 1 {
		t.Errorf("influence = %v, want clamp to 1", got)
	}
}

func TestBuildFrame_OrbClamp(t *testing.T) {
	agg := NewAggregator(formats.ProfileEncoded, 64, 0.25)

	orbs := make([]ResonanceOrb, MaxResonanceOrbs+3)
	for i := range orbs {
		orbs[i].Intensity = float32(i + 1)
	}

	fs := agg.BuildFrame(testCamera(), PlayerState{}, orbs, 1)
	if fs.Resonance == nil {
		t.Fatal("encoded profile frame should carry resonance data")
	}
	if fs.Resonance.OrbCount != MaxResonanceOrbs {
		t.Errorf("orbCount = %d, want clamp to %d", fs.Resonance.OrbCount, MaxResonanceOrbs)
	}
	if got := len(fs.Resonance.Active()); got != MaxResonanceOrbs {
		t.Errorf("active orbs = %d, want %d", got, MaxResonanceOrbs)
	}
	// Dropped orbs must not leak into the record.
	for i, orb := range fs.Resonance.Orbs {
		if orb.Intensity != float32(i+1) {
			t.Errorf("orb %d intensity = %v, want %v", i, orb.Intensity, float32(i+1))
		}
	}
}

func TestBuildFrame_RawProfileHasNoResonance(t *testing.T) {
	agg := NewAggregator(formats.ProfileRaw, 64, 0.25)
	fs := agg.BuildFrame(testCamera(), PlayerState{}, []ResonanceOrb{{Intensity: 1}}, 1)
	if fs.Resonance != nil {
		t.Error("raw profile frame must not carry resonance data")
	}
}

func TestBuildFrame_Uniforms(t *testing.T) {
	agg := NewAggregator(formats.ProfileEncoded, 32, 0.5)
	cam := testCamera()
	fs := agg.BuildFrame(cam, PlayerState{}, nil, 2.5)

	if fs.Uniforms.Time != 2.5 {
		t.Errorf("time = %v, want 2.5", fs.Uniforms.Time)
	}
	if fs.Uniforms.GridSize != 32 || fs.Uniforms.GridSpacing != 0.5 {
		t.Errorf("grid = %v/%v, want 32/0.5", fs.Uniforms.GridSize, fs.Uniforms.GridSpacing)
	}
	if fs.Uniforms.CameraPosition != cam.Eye {
		t.Errorf("camera position = %v, want %v", fs.Uniforms.CameraPosition, cam.Eye)
	}
	if fs.Uniforms.ModelView != mathx.LookAt(cam.Eye, cam.Target, cam.Up) {
		t.Error("modelView should be the camera view matrix (identity model)")
	}
}

func testCamera() Camera {
	return Camera{
		Eye:    mathx.Vec3{X: 0, Y: 10, Z: 10},
		Target: mathx.Vec3{},
		Up:     mathx.Vec3{Y: 1},
		FovY:   1.0,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    100,
	}
}
