package neural

import (
	"errors"
	"fmt"
)

// Weight store errors.
var (
	ErrWeightCountMismatch = errors.New("weight buffer length does not match topology")
)

// LayerView is a read-only slice pair into the flat weight buffer for one
// layer: Weights is the In×Out row-major matrix, Biases the Out-length
// bias vector.
type LayerView struct {
	In      int
	Out     int
	Weights []float32
	Biases  []float32
}

// WeightStore holds one network's flat weight buffer together with its
// declared topology. It is immutable after construction and safe to share
// across concurrent evaluations without locking.
type WeightStore struct {
	topology Topology
	flat     []float32
	layers   []LayerView
}

// NewWeightStore validates weights against the declared topology and slices
// the buffer into per-layer views. A length mismatch is a configuration
// error: the asset is broken and no forward evaluation is possible.
func NewWeightStore(topology Topology, weights []float32) (*WeightStore, error) {
	want := topology.WeightCount()
	if len(weights) != want {
		return nil, fmt.Errorf("%w: topology requires %d elements, buffer has %d",
			ErrWeightCountMismatch, want, len(weights))
	}

	layers := make([]LayerView, len(topology))
	offset := 0
	for i, l := range topology {
		wEnd := offset + l.In*l.Out
		bEnd := wEnd + l.Out
		layers[i] = LayerView{
			In:      l.In,
			Out:     l.Out,
			Weights: weights[offset:wEnd:wEnd],
			Biases:  weights[wEnd:bEnd:bEnd],
		}
		offset = bEnd
	}

	return &WeightStore{topology: topology, flat: weights, layers: layers}, nil
}

// Flat returns the flat layer-ordered weight buffer. Callers must treat it
// as read-only; it backs every layer view.
func (s *WeightStore) Flat() []float32 {
	return s.flat
}

// Topology returns the declared topology.
func (s *WeightStore) Topology() Topology {
	return s.topology
}

// Layer returns the typed view of layer i.
func (s *WeightStore) Layer(i int) LayerView {
	return s.layers[i]
}

// Forward runs the full forward pass: per layer out = act(W·in + b), with
// tanh on hidden layers and a raw affine final layer. The weight matrix is
// row-major input-major: element (i, j) sits at w[i*Out+j]. input must have
// the topology's input length and output its output length; both are the
// caller's buffers, so evaluation allocates nothing and is safe to run from
// arbitrarily many goroutines at once.
func (s *WeightStore) Forward(input, output []float32) {
	var bufA, bufB [maxLayerWidth]float32

	cur := input
	for li, layer := range s.layers {
		var dst []float32
		switch {
		case li == len(s.layers)-1:
			dst = output
		case li%2 == 0:
			dst = bufA[:layer.Out]
		default:
			dst = bufB[:layer.Out]
		}

		for j := 0; j < layer.Out; j++ {
			sum := layer.Biases[j]
			for i := 0; i < layer.In; i++ {
				sum += cur[i] * layer.Weights[i*layer.Out+j]
			}
			dst[j] = sum
		}

		if li < len(s.layers)-1 {
			for j := range dst {
				dst[j] = tanh32(dst[j])
			}
		}
		cur = dst
	}
}
