package neural

import (
	"errors"
	"testing"

	mathx "github.com/Faultbox/neuraterra/pkg/math"
	"github.com/Faultbox/neuraterra/pkg/formats"
)

func colorBundle(profile formats.Profile, weights []float32) *formats.NNW {
	return &formats.NNW{Kind: formats.NetworkColor, Profile: profile, Weights: weights}
}

func TestNewColorNetwork_KindMismatch(t *testing.T) {
	bundle := &formats.NNW{
		Kind:    formats.NetworkTerrain,
		Profile: formats.ProfileEncoded,
		Weights: make([]float32, 1732),
	}
	_, err := NewColorNetwork(bundle, formats.ProfileEncoded)
	if !errors.Is(err, ErrNetworkKindMismatch) {
		t.Errorf("expected ErrNetworkKindMismatch, got %v", err)
	}
}

func TestNewColorNetwork_ProfileMismatch(t *testing.T) {
	bundle := colorBundle(formats.ProfileEncoded, make([]float32, 1371))
	_, err := NewColorNetwork(bundle, formats.ProfileRaw)
	if !errors.Is(err, ErrProfileMismatch) {
		t.Errorf("expected ErrProfileMismatch, got %v", err)
	}
}

func TestNewColorNetwork_WrongLength(t *testing.T) {
	bundle := colorBundle(formats.ProfileRaw, make([]float32, 500))
	_, err := NewColorNetwork(bundle, formats.ProfileRaw)
	if !errors.Is(err, ErrWeightCountMismatch) {
		t.Errorf("expected ErrWeightCountMismatch, got %v", err)
	}
}

func TestColorEvaluate_ZeroWeights(t *testing.T) {
	for _, profile := range []formats.Profile{formats.ProfileRaw, formats.ProfileEncoded} {
		topo := ColorTopology(profile)
		net, err := NewColorNetwork(colorBundle(profile, make([]float32, topo.WeightCount())), profile)
		if err != nil {
			t.Fatalf("NewColorNetwork failed: %v", err)
		}

		rgb := net.Evaluate(
			mathx.Vec3{X: 1, Y: 2, Z: 3},
			mathx.Vec3{Y: 1},
			mathx.Vec3{Z: 1},
			10,
		)
		if rgb != [3]float32{} {
			t.Errorf("profile %s: rgb = %v, want zeros", profile, rgb)
		}
	}
}

func TestColorEvaluate_FinalLayerBiasesPassThrough(t *testing.T) {
	topo := ColorTopology(formats.ProfileEncoded)
	weights := make([]float32, topo.WeightCount())
	biasStart := topo.WeightCount() - ColorOutput
	weights[biasStart+0] = 1.5  // r, out of display range on purpose
	weights[biasStart+1] = 0.5  // g
	weights[biasStart+2] = -0.5 // b, below display range on purpose

	net, err := NewColorNetwork(colorBundle(formats.ProfileEncoded, weights), formats.ProfileEncoded)
	if err != nil {
		t.Fatalf("NewColorNetwork failed: %v", err)
	}

	rgb := net.Evaluate(mathx.Vec3{X: 4, Y: 5, Z: 6}, mathx.Vec3{Y: 1}, mathx.Vec3{X: 1}, 0)
	want := [3]float32{1.5, 0.5, -0.5}
	if rgb != want {
		t.Errorf("rgb = %v, want %v (raw output is not clamped by the network)", rgb, want)
	}
}

func TestColorEvaluate_Deterministic(t *testing.T) {
	topo := ColorTopology(formats.ProfileEncoded)
	weights := make([]float32, topo.WeightCount())
	for i := range weights {
		weights[i] = float32((i*7)%13)*0.03 - 0.18
	}
	net, err := NewColorNetwork(colorBundle(formats.ProfileEncoded, weights), formats.ProfileEncoded)
	if err != nil {
		t.Fatalf("NewColorNetwork failed: %v", err)
	}

	pos := mathx.Vec3{X: 0.5, Y: 1.5, Z: -2.5}
	n := mathx.Vec3{X: 0, Y: 1, Z: 0}
	v := mathx.Vec3{X: 0.7071, Y: 0, Z: 0.7071}

	a := net.Evaluate(pos, n, v, 3.25)
	b := net.Evaluate(pos, n, v, 3.25)
	if a != b {
		t.Errorf("evaluation not deterministic: %v vs %v", a, b)
	}
}
