// Package randutil constructs the deterministic random sources shared by
// the quest, event, and card subsystems.
package randutil

import rand "math/rand/v2"

// New returns a *rand.Rand seeded from the provided int64. The two
// 64-bit PCG seeds are derived with a splitmix finalizer so equal seeds
// replay identical games.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u^0x9e3779b97f4a7c15)))
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
