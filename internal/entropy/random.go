// Package entropy provides the deterministic random streams the simulation
// draws from. Every stochastic decision (weather, price variance) is keyed by
// the farm seed plus the in-game day, so a replayed day reproduces exactly.
// Falls back to crypto/rand only for choosing a fresh farm seed.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"hash/fnv"
	"log/slog"
	mrand "math/rand/v2"
)

// Stream returns a PCG generator derived from seed and the given salts.
// Equal inputs always yield the same sequence.
func Stream(seed int64, salts ...uint64) *mrand.Rand {
	hi := mix(uint64(seed))
	lo := mix(hi ^ 0x9e3779b97f4a7c15)
	for _, s := range salts {
		hi = mix(hi ^ s)
		lo = mix(lo + s)
	}
	return mrand.New(mrand.NewPCG(hi, lo))
}

// Float returns the first float64 in [0, 1) of the stream for seed/salts.
func Float(seed int64, salts ...uint64) float64 {
	return Stream(seed, salts...).Float64()
}

// Uniform returns a deterministic value in [lo, hi).
func Uniform(lo, hi float64, seed int64, salts ...uint64) float64 {
	return lo + (hi-lo)*Float(seed, salts...)
}

// HashString maps a name to a salt (FNV-1a).
func HashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// mix is the splitmix64 finalizer.
func mix(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// CryptoSeed returns a fresh non-zero seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; a fixed seed keeps the game playable.
		slog.Warn("crypto seed unavailable, using fixed seed", "error", err)
		return 42
	}
	s := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}
