package bloom

import (
	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// HashFunc hashes an item under a seed. Bloom filters only need good
// statistical distribution, so any fast non-cryptographic hash works.
type HashFunc func(item []byte, seed uint32) uint64

// Murmur3 is the default HashFunc. It is the 32-bit Murmur3 hash with the
// seed fed straight into the hash state, so every seed yields an
// independent-looking function of the same item.
func Murmur3(item []byte, seed uint32) uint64 {
	return uint64(murmur3.Sum32WithSeed(item, seed))
}

// XXHash hashes the item once with xxHash and then decorrelates the result
// per seed with SplitMix64. The seed is spread by the golden-ratio constant
// before mixing so consecutive seeds land far apart.
func XXHash(item []byte, seed uint32) uint64 {
	return mix(xxhash.Sum64(item) + uint64(seed)*0x9e3779b97f4a7c15)
}

// HashScheme derives the k bit positions of an item. Iteration i hashes the
// item with seed Seed+i and reduces the result modulo the bit-array width.
//
// The zero value is usable and equivalent to Murmur3 with seed 0.
type HashScheme struct {
	Func HashFunc
	Seed uint32
}

// DefaultHashScheme returns Murmur3 with seed 0.
func DefaultHashScheme() HashScheme {
	return HashScheme{Func: Murmur3}
}

// Positions returns the k positions in [0, m) for item. The result is
// deterministic for a fixed scheme and (item, k, m). Positions may repeat.
//
// A non-positive k or m is a programming error and panics.
func (hs HashScheme) Positions(item []byte, k, m int) []int {
	if k <= 0 || m <= 0 {
		panic("bloom: hash positions need k > 0 and m > 0")
	}

	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = hs.position(item, i, m)
	}
	return out
}

// position computes the i-th bit position without allocating. Add and Check
// call it directly so the hot path never builds a slice.
func (hs HashScheme) position(item []byte, i, m int) int {
	fn := hs.Func
	if fn == nil {
		fn = Murmur3
	}
	return int(fn(item, hs.Seed+uint32(i)) % uint64(m))
}
