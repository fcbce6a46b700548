package neural

import (
	"fmt"

	mathx "github.com/Faultbox/neuraterra/pkg/math"
	"github.com/Faultbox/neuraterra/pkg/formats"
)

// ColorNetwork evaluates a surface color from encoded position, surface
// normal, view direction and time. Output components are not guaranteed to
// lie in [0,1]; callers clamp before display (see the shading package).
// Same purity and concurrency contract as TerrainNetwork.
type ColorNetwork struct {
	store   *WeightStore
	profile formats.Profile
}

// NewColorNetwork builds a color network from a parsed weight bundle for the
// given profile. Kind or profile mismatches are configuration errors.
func NewColorNetwork(bundle *formats.NNW, profile formats.Profile) (*ColorNetwork, error) {
	if bundle.Kind != formats.NetworkColor {
		return nil, fmt.Errorf("%w: bundle is %s, want color", ErrNetworkKindMismatch, bundle.Kind)
	}
	if bundle.Profile != profile {
		return nil, fmt.Errorf("%w: bundle packed for %s, engine configured for %s",
			ErrProfileMismatch, bundle.Profile, profile)
	}

	store, err := NewWeightStore(ColorTopology(profile), bundle.Weights)
	if err != nil {
		return nil, fmt.Errorf("color weights: %w", err)
	}

	return &ColorNetwork{store: store, profile: profile}, nil
}

// Profile returns the profile the network was built for.
func (n *ColorNetwork) Profile() formats.Profile {
	return n.profile
}

// Store returns the underlying weight store.
func (n *ColorNetwork) Store() *WeightStore {
	return n.store
}

// Evaluate runs the forward pass at surface position pos. normal and viewDir
// are expected unit-length; time is seconds since session start.
func (n *ColorNetwork) Evaluate(pos, normal, viewDir mathx.Vec3, time float32) [3]float32 {
	var inBuf [ColorInputEncoded]float32
	in := inBuf[:0]

	if n.profile == formats.ProfileEncoded {
		in = EncodeCoord(in, pos.X)
		in = EncodeCoord(in, pos.Y)
		in = EncodeCoord(in, pos.Z)
	} else {
		in = append(in, pos.X, pos.Y, pos.Z)
	}
	in = append(in, normal.X, normal.Y, normal.Z)
	in = append(in, viewDir.X, viewDir.Y, viewDir.Z)
	in = append(in, time)

	var out [ColorOutput]float32
	n.store.Forward(in, out[:])

	return out
}
