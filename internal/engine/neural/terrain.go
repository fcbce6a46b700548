package neural

import (
	"errors"
	"fmt"

	mathx "github.com/Faultbox/neuraterra/pkg/math"
	"github.com/Faultbox/neuraterra/pkg/formats"
)

// Network construction errors.
var (
	ErrNetworkKindMismatch = errors.New("weight bundle is for a different network")
	ErrProfileMismatch     = errors.New("weight bundle is for a different profile")
)

// TerrainSample is the raw terrain network output at one surface point.
// Normal is NOT guaranteed unit-length; callers must renormalize (see the
// shading package) before use, and must sanitize non-finite values.
type TerrainSample struct {
	Height float32
	Normal mathx.Vec3
}

// TerrainNetwork evaluates height and surface normal from encoded position,
// time and player influence. Evaluation is a pure function of its inputs and
// the immutable weight set: no side effects, no locking, safe for any number
// of concurrent callers.
type TerrainNetwork struct {
	store   *WeightStore
	profile formats.Profile
}

// NewTerrainNetwork builds a terrain network from a parsed weight bundle for
// the given profile. Kind or profile mismatches are configuration errors.
func NewTerrainNetwork(bundle *formats.NNW, profile formats.Profile) (*TerrainNetwork, error) {
	if bundle.Kind != formats.NetworkTerrain {
		return nil, fmt.Errorf("%w: bundle is %s, want terrain", ErrNetworkKindMismatch, bundle.Kind)
	}
	if bundle.Profile != profile {
		return nil, fmt.Errorf("%w: bundle packed for %s, engine configured for %s",
			ErrProfileMismatch, bundle.Profile, profile)
	}

	store, err := NewWeightStore(TerrainTopology(profile), bundle.Weights)
	if err != nil {
		return nil, fmt.Errorf("terrain weights: %w", err)
	}

	return &TerrainNetwork{store: store, profile: profile}, nil
}

// Profile returns the profile the network was built for.
func (n *TerrainNetwork) Profile() formats.Profile {
	return n.profile
}

// Store returns the underlying weight store.
func (n *TerrainNetwork) Store() *WeightStore {
	return n.store
}

// Evaluate runs the forward pass at surface position (x, z).
// playerInfluence is the scalar produced by the caller's influence policy
// (see scene.InfluenceAt); the network itself applies no falloff.
func (n *TerrainNetwork) Evaluate(x, z, time, playerInfluence float32) TerrainSample {
	var inBuf [TerrainInputEncoded]float32
	in := inBuf[:0]

	if n.profile == formats.ProfileEncoded {
		in = EncodeCoord(in, x)
		in = EncodeCoord(in, z)
	} else {
		in = append(in, x, z)
	}
	in = append(in, time, playerInfluence)

	var out [TerrainOutput]float32
	n.store.Forward(in, out[:])

	return TerrainSample{
		Height: out[0],
		Normal: mathx.Vec3{X: out[1], Y: out[2], Z: out[3]},
	}
}
