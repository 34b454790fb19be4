// Package bloom implements a classic Bloom filter and a Scalable Bloom Filter
// built as a chain of classic filters.
//
// A Bloom filter is a probabilistic data structure that allows checking if an
// element is *definitely not* in a set or *probably* in a set. It is highly
// space-efficient but does not support deletion.
//
// The package exposes two types:
//
//  1. Filter (Fixed Capacity):
//     A single packed bit array sized from a target capacity n and false
//     positive rate p. Each item sets k bits chosen by a HashScheme. Once n
//     items have been added the filter refuses further inserts with
//     ErrCapacityExceeded instead of silently degrading its error rate.
//
//  2. ScalableFilter (Dynamic Growth):
//     A chain of Filters ("tiers"). When the active tier fills up, a new tier
//     is appended with greater capacity and a tighter error rate. Queries
//     consult every tier.
//     [1] P. Almeida, C. Baquero, N. Preguica, D. Hutchison. "Scalable Bloom Filters".
//
// The Algorithm
// =============
//
// Sizing follows the standard formulas for an optimal Bloom filter:
//
//	m = ceil(-n * ln(p) / (ln 2)^2)     bits
//	k = max(1, round((m / n) * ln 2))    hash functions
//
// Instead of k distinct hash algorithms, the HashScheme runs one fast
// non-cryptographic hash k times with seeds Seed, Seed+1, ..., Seed+k-1 and
// reduces each result modulo m. This gives adequate independence for Bloom
// filter purposes at a fraction of the cost.
//
// Tier i of a ScalableFilter has capacity n0 * g^i and error rate p0 * r^i,
// where g is the growth multiplier (2 or 4) and r the tightening ratio. The
// compound false positive probability is bounded by the geometric series
//
//	p0 * (1 + r + r^2 + ...) = p0 / (1 - r)
//
// no matter how many tiers accumulate.
//
// Concurrency
// ===========
//
// Neither type is safe for concurrent use. A filter shared across goroutines
// must be guarded by the caller.
package bloom

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Filter is a fixed-capacity Bloom filter.
type Filter struct {
	// bits is the packed bit vector of length numBits. Bits are only ever
	// set, never cleared.
	bits *bitset.BitSet

	capacity  int
	errorRate float64
	numBits   int
	numHashes int

	// count is the number of successful Add calls. Duplicates are counted.
	count int

	hash HashScheme
}

// Option configures a Filter at construction time.
type Option func(*Filter)

// WithHashScheme replaces the default Murmur3 scheme.
func WithHashScheme(hs HashScheme) Option {
	return func(f *Filter) {
		f.hash = hs
	}
}

// WithSeed sets the base seed of the hash scheme.
func WithSeed(seed uint32) Option {
	return func(f *Filter) {
		f.hash.Seed = seed
	}
}

// NewFilter creates an empty Filter sized to hold capacity items at the given
// target false positive rate. It returns ErrInvalidArgument if capacity is not
// positive, errorRate is outside (0, 1), or the bit array would not fit in an
// int.
func NewFilter(capacity int, errorRate float64, opts ...Option) (*Filter, error) {
	if err := validate(capacity, errorRate); err != nil {
		return nil, err
	}
	if err := validateSize(capacity, errorRate); err != nil {
		return nil, err
	}

	m, k := EstimateParameters(capacity, errorRate)

	f := &Filter{
		bits:      bitset.New(uint(m)),
		capacity:  capacity,
		errorRate: errorRate,
		numBits:   m,
		numHashes: k,
		hash:      DefaultHashScheme(),
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Add inserts an item. It returns ErrCapacityExceeded if the filter already
// holds capacity items; the filter is left untouched in that case.
//
// Adding the same item twice sets no new bits but still counts as an insert.
func (f *Filter) Add(item []byte) error {
	if f.count >= f.capacity {
		return ErrCapacityExceeded
	}

	for i := 0; i < f.numHashes; i++ {
		f.bits.Set(uint(f.hash.position(item, i, f.numBits)))
	}
	f.count++

	return nil
}

// Check tests whether an item is probably in the set. A false result is a
// proof that the item was never added. Check returns as soon as it finds an
// unset bit, so most negative lookups touch fewer than k bits.
func (f *Filter) Check(item []byte) bool {
	for i := 0; i < f.numHashes; i++ {
		if !f.bits.Test(uint(f.hash.position(item, i, f.numBits))) {
			return false
		}
	}
	return true
}

// Capacity returns the number of items the filter was sized for.
func (f *Filter) Capacity() int { return f.capacity }

// ErrorRate returns the target false positive rate at capacity.
func (f *Filter) ErrorRate() float64 { return f.errorRate }

// NumBits returns m, the width of the bit array.
func (f *Filter) NumBits() int { return f.numBits }

// NumHashes returns k, the number of bit positions per item.
func (f *Filter) NumHashes() int { return f.numHashes }

// Count returns the number of successful Add calls.
func (f *Filter) Count() int { return f.count }

// IsFull reports whether the next Add would fail with ErrCapacityExceeded.
func (f *Filter) IsFull() bool { return f.count >= f.capacity }

// FillRatio returns the fraction of bits that are set.
func (f *Filter) FillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.numBits)
}

// EstimatedFalsePositiveRate estimates the current false positive rate from
// the observed fill ratio. A query for an absent item returns true only if
// all k of its positions are set, which happens with probability fill^k.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return math.Pow(f.FillRatio(), float64(f.numHashes))
}

// Stats is a point-in-time summary of a Filter.
type Stats struct {
	Capacity   int
	ErrorRate  float64
	NumBits    int
	NumHashes  int
	Count      int
	FillRatio  float64
	EstimatedP float64
}

// Stats returns a snapshot of the filter's parameters and occupancy.
func (f *Filter) Stats() Stats {
	return Stats{
		Capacity:   f.capacity,
		ErrorRate:  f.errorRate,
		NumBits:    f.numBits,
		NumHashes:  f.numHashes,
		Count:      f.count,
		FillRatio:  f.FillRatio(),
		EstimatedP: f.EstimatedFalsePositiveRate(),
	}
}
