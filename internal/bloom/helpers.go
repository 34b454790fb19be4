package bloom

import (
	"fmt"
	"math"
)

// mix scrambles a 64-bit integer to remove correlation using the SplitMix64
// finalizer (public domain). It turns a single xxHash value into as many
// uncorrelated per-seed hashes as needed without re-reading the item bytes.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// EstimateParameters calculates the bit-array width m and the hash count k
// for a filter that should hold n items at false positive rate p.
//
//	m = ceil(-n * ln(p) / (ln 2)^2)
//	k = max(1, round((m / n) * ln 2))
//
// Both values are derived with float64 intermediates. k is floored at 1: a
// zero-hash filter would answer true for every query.
//
// The caller must have validated n > 0 and 0 < p < 1 (see validate) and
// that the bit count fits in an int (see validateSize).
func EstimateParameters(n int, p float64) (m, k int) {
	m = int(math.Ceil(requiredBits(n, p)))
	if m < 1 {
		m = 1
	}

	k = int(math.Round(float64(m) / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return m, k
}

// validate checks constructor parameters shared by Filter and ScalableFilter.
func validate(capacity int, errorRate float64) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidArgument, capacity)
	}
	if !validRate(errorRate) {
		return fmt.Errorf("%w: error rate must be in (0, 1), got %v", ErrInvalidArgument, errorRate)
	}
	return nil
}

// requiredBits is the unrounded bit count -n * ln(p) / (ln 2)^2.
func requiredBits(n int, p float64) float64 {
	return -float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)
}

// validateSize rejects parameters whose bit array cannot be indexed by an
// int. float64(math.MaxInt) rounds up to 2^63, so the comparison is >=.
func validateSize(capacity int, errorRate float64) error {
	if bits := requiredBits(capacity, errorRate); bits >= float64(math.MaxInt) {
		return fmt.Errorf("%w: capacity %d at error rate %v needs %.3g bits", ErrInvalidArgument, capacity, errorRate, bits)
	}
	return nil
}

// validRate reports whether r lies in the open interval (0, 1). NaN fails
// both comparisons and is rejected.
func validRate(r float64) bool {
	return r > 0 && r < 1
}
