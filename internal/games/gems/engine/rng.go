package engine

import "math/rand/v2"

// IntNSource is the slice of *rand.Rand the engine needs.
// Tests substitute a scripted source.
type IntNSource interface {
	IntN(n int) int
}

// newSource returns a PCG-backed source. A zero seed picks a random one.
func newSource(seed uint64) IntNSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// permutation returns the gem types 0..n-1 in a Fisher-Yates shuffled order.
func permutation(src IntNSource, n int) []GemType {
	out := make([]GemType, n)
	for i := range out {
		out[i] = GemType(i)
	}
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
