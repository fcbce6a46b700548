package math

import (
	gomath "math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	got := Vec3{}.Normalize()
	if got != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	nan := float32(gomath.NaN())
	if (Vec3{nan, 0, 0}).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
	inf := float32(gomath.Inf(1))
	if (Vec3{0, inf, 0}).IsFinite() {
		t.Error("Inf vector reported as finite")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Clamp(1.5, 0, 1) = %v, want 1", got)
	}
	if got := Clamp(-0.5, 0, 1); got != 0 {
		t.Errorf("Clamp(-0.5, 0, 1) = %v, want 0", got)
	}
	if got := Clamp(0.25, 0, 1); got != 0.25 {
		t.Errorf("Clamp(0.25, 0, 1) = %v, want 0.25", got)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.Mul(Identity())
	if got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
}

func TestMat4TransformPoint(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{2, 3, 4}
	if got != want {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := Translate(5, -3, 2).Mul(LookAt(Vec3{0, 10, 10}, Vec3{}, Vec3{0, 1, 0}))
	round := m.Mul(m.Inverse())
	id := Identity()
	for i := range round {
		if diff := round[i] - id[i]; diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("M * M^-1 differs from identity at %d: %v", i, round[i])
		}
	}
}

func TestNormalMatrixOfTranslation(t *testing.T) {
	// Translation must not affect normals.
	nm := NormalMatrix(Translate(10, 20, 30))
	id := Identity3()
	for i := range nm {
		if diff := nm[i] - id[i]; diff > 1e-5 || diff < -1e-5 {
			t.Fatalf("normal matrix of translation differs from identity at %d: %v", i, nm[i])
		}
	}
}

func TestMat3MulVec3(t *testing.T) {
	got := Identity3().MulVec3(Vec3{1, 2, 3})
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("I3 * v = %v, want %v", got, want)
	}
}
