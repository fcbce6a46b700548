// Package formats provides parsers for neuraterra asset file formats.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// NNW format errors.
var (
	ErrInvalidNNWMagic       = errors.New("invalid NNW magic: expected 'NNWB'")
	ErrUnsupportedNNWVersion = errors.New("unsupported NNW version")
	ErrTruncatedNNWData      = errors.New("truncated NNW data")
	ErrNNWCountMismatch      = errors.New("NNW element count does not match payload size")
	ErrUnknownNetworkKind    = errors.New("unknown network kind")
	ErrUnknownProfile        = errors.New("unknown network profile")
)

// nnwMagic identifies a neural network weight bundle file.
const nnwMagic = "NNWB"

// nnwVersion is the current format version.
const nnwVersion = 1

// nnwHeaderSize is the fixed header size in bytes.
const nnwHeaderSize = 12

// NetworkKind identifies which network a weight bundle feeds.
type NetworkKind uint8

// Network kinds.
const (
	NetworkTerrain NetworkKind = 0 // height + surface normal
	NetworkColor   NetworkKind = 1 // surface color
)

// String returns a human-readable network kind name.
func (k NetworkKind) String() string {
	switch k {
	case NetworkTerrain:
		return "terrain"
	case NetworkColor:
		return "color"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Profile identifies the input-feature configuration a weight bundle was
// packed for. A bundle is valid for exactly one profile.
type Profile uint8

// Profiles.
const (
	ProfileRaw     Profile = 0 // raw coordinate inputs, no resonance
	ProfileEncoded Profile = 1 // positional-encoded inputs + resonance orbs
)

// String returns a human-readable profile name.
func (p Profile) String() string {
	switch p {
	case ProfileRaw:
		return "raw"
	case ProfileEncoded:
		return "encoded"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// NNW represents a parsed neural network weight bundle.
// Weights holds the flat layer-ordered concatenation of (row-major weight
// matrix, bias vector) for every layer of the network.
type NNW struct {
	Kind    NetworkKind
	Profile Profile
	Weights []float32
}

// ParseNNW parses a weight bundle from raw bytes.
func ParseNNW(data []byte) (*NNW, error) {
	if len(data) < nnwHeaderSize {
		return nil, ErrTruncatedNNWData
	}
	if string(data[0:4]) != nnwMagic {
		return nil, ErrInvalidNNWMagic
	}
	if data[4] != nnwVersion {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedNNWVersion, data[4])
	}

	kind := NetworkKind(data[5])
	if kind != NetworkTerrain && kind != NetworkColor {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNetworkKind, data[5])
	}
	profile := Profile(data[6])
	if profile != ProfileRaw && profile != ProfileEncoded {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProfile, data[6])
	}
	// data[7] is reserved.

	count := binary.LittleEndian.Uint32(data[8:12])
	payload := data[nnwHeaderSize:]
	if len(payload) != int(count)*4 {
		return nil, fmt.Errorf("%w: header declares %d elements (%d bytes), payload is %d bytes",
			ErrNNWCountMismatch, count, count*4, len(payload))
	}

	weights := make([]float32, count)
	for i := range weights {
		bits := binary.LittleEndian.Uint32(payload[i*4 : i*4+4])
		weights[i] = math.Float32frombits(bits)
	}

	return &NNW{Kind: kind, Profile: profile, Weights: weights}, nil
}

// WriteNNW serializes a weight bundle to the NNW binary format.
func WriteNNW(nnw *NNW) ([]byte, error) {
	if nnw.Kind != NetworkTerrain && nnw.Kind != NetworkColor {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNetworkKind, uint8(nnw.Kind))
	}
	if nnw.Profile != ProfileRaw && nnw.Profile != ProfileEncoded {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProfile, uint8(nnw.Profile))
	}

	buf := new(bytes.Buffer)
	buf.Grow(nnwHeaderSize + len(nnw.Weights)*4)

	buf.WriteString(nnwMagic)
	buf.WriteByte(nnwVersion)
	buf.WriteByte(byte(nnw.Kind))
	buf.WriteByte(byte(nnw.Profile))
	buf.WriteByte(0) // reserved

	binary.Write(buf, binary.LittleEndian, uint32(len(nnw.Weights)))
	for _, w := range nnw.Weights {
		binary.Write(buf, binary.LittleEndian, math.Float32bits(w))
	}

	return buf.Bytes(), nil
}
