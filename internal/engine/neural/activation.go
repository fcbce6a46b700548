package neural

// tanh32 is the hidden-layer nonlinearity, a fast rational approximation of
// tanh that avoids float64 conversion. The |x|>4 branches are rarely taken.
// Both hidden layers of both networks use this single activation; the final
// layer of each network is raw affine.
func tanh32(x float32) float32 {
	if x > 4 {
		return 1
	}
	if x < -4 {
		return -1
	}
	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}
