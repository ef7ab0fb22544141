package arith

import "math/rand/v2"

// Source is the randomness the generators draw from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed source. A zero seed picks a random stream.
func NewSource(seed int64) Source {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// RandInt returns a uniform integer in [min, max] inclusive.
func RandInt(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.IntN(max-min+1)
}

// Pick returns a uniformly chosen element of items, which must be non-empty.
func Pick[T any](src Source, items []T) T {
	return items[RandInt(src, 0, len(items)-1)]
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := RandInt(src, 0, i)
		items[i], items[j] = items[j], items[i]
	}
}
