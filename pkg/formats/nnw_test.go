package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

// createTestNNW builds a minimal valid NNW file for testing.
func createTestNNW(kind NetworkKind, profile Profile, weights []float32) []byte {
	buf := new(bytes.Buffer)

	buf.WriteString("NNWB")
	buf.WriteByte(1) // version
	buf.WriteByte(byte(kind))
	buf.WriteByte(byte(profile))
	buf.WriteByte(0) // reserved

	binary.Write(buf, binary.LittleEndian, uint32(len(weights)))
	for _, w := range weights {
		binary.Write(buf, binary.LittleEndian, math.Float32bits(w))
	}

	return buf.Bytes()
}

func TestParseNNW_ValidFile(t *testing.T) {
	weights := []float32{0.5, -1.25, 3.0, 0}
	data := createTestNNW(NetworkTerrain, ProfileEncoded, weights)

	nnw, err := ParseNNW(data)
	if err != nil {
		t.Fatalf("ParseNNW failed: %v", err)
	}

	if nnw.Kind != NetworkTerrain {
		t.Errorf("expected kind terrain, got %s", nnw.Kind)
	}
	if nnw.Profile != ProfileEncoded {
		t.Errorf("expected profile encoded, got %s", nnw.Profile)
	}
	if len(nnw.Weights) != len(weights) {
		t.Fatalf("expected %d weights, got %d", len(weights), len(nnw.Weights))
	}
	for i, w := range weights {
		if nnw.Weights[i] != w {
			t.Errorf("weight %d: expected %v, got %v", i, w, nnw.Weights[i])
		}
	}
}

func TestParseNNW_InvalidMagic(t *testing.T) {
	data := createTestNNW(NetworkColor, ProfileRaw, []float32{1})
	copy(data[0:4], "XXXX")

	_, err := ParseNNW(data)
	if !errors.Is(err, ErrInvalidNNWMagic) {
		t.Errorf("expected ErrInvalidNNWMagic, got %v", err)
	}
}

func TestParseNNW_UnsupportedVersion(t *testing.T) {
	data := createTestNNW(NetworkColor, ProfileRaw, []float32{1})
	data[4] = 99

	_, err := ParseNNW(data)
	if !errors.Is(err, ErrUnsupportedNNWVersion) {
		t.Errorf("expected ErrUnsupportedNNWVersion, got %v", err)
	}
}

func TestParseNNW_Truncated(t *testing.T) {
	data := createTestNNW(NetworkTerrain, ProfileEncoded, []float32{1, 2, 3})

	_, err := ParseNNW(data[:8])
	if !errors.Is(err, ErrTruncatedNNWData) {
		t.Errorf("expected ErrTruncatedNNWData for short header, got %v", err)
	}

	_, err = ParseNNW(data[:len(data)-4])
	if !errors.Is(err, ErrNNWCountMismatch) {
		t.Errorf("expected ErrNNWCountMismatch for short payload, got %v", err)
	}
}

func TestParseNNW_UnknownKindAndProfile(t *testing.T) {
	data := createTestNNW(NetworkTerrain, ProfileEncoded, []float32{1})
	data[5] = 7
	if _, err := ParseNNW(data); !errors.Is(err, ErrUnknownNetworkKind) {
		t.Errorf("expected ErrUnknownNetworkKind, got %v", err)
	}

	data = createTestNNW(NetworkTerrain, ProfileEncoded, []float32{1})
	data[6] = 7
	if _, err := ParseNNW(data); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestWriteNNW_RoundTrip(t *testing.T) {
	in := &NNW{
		Kind:    NetworkColor,
		Profile: ProfileRaw,
		Weights: []float32{0, 1.5, -2.75, 1e-8},
	}

	data, err := WriteNNW(in)
	if err != nil {
		t.Fatalf("WriteNNW failed: %v", err)
	}

	out, err := ParseNNW(data)
	if err != nil {
		t.Fatalf("ParseNNW failed: %v", err)
	}

	if out.Kind != in.Kind || out.Profile != in.Profile {
		t.Errorf("header mismatch: got %s/%s, want %s/%s", out.Kind, out.Profile, in.Kind, in.Profile)
	}
	for i := range in.Weights {
		if out.Weights[i] != in.Weights[i] {
			t.Errorf("weight %d: got %v, want %v", i, out.Weights[i], in.Weights[i])
		}
	}
}
