package bloom

import (
	"fmt"
	"math"
	"strings"
)

// GrowthMode is the capacity multiplier applied to each new tier.
type GrowthMode int

const (
	// GrowthSlow doubles capacity per tier. Memory grows slower at the cost
	// of more, smaller tiers (and more work per Check).
	GrowthSlow GrowthMode = 2

	// GrowthFast quadruples capacity per tier, creating fewer, larger tiers.
	GrowthFast GrowthMode = 4
)

const (
	// Configuration Defaults
	DefaultCapacity        = 100
	DefaultErrorRate       = 0.05
	DefaultGrowth          = GrowthSlow
	DefaultTighteningRatio = 0.9

	// MaxTiers is a safety break on growth. With GrowthSlow, 64 tiers would
	// need a capacity beyond 2^63 items, so it is never hit in practice.
	MaxTiers = 64
)

func (g GrowthMode) String() string {
	switch g {
	case GrowthSlow:
		return "slow"
	case GrowthFast:
		return "fast"
	default:
		return fmt.Sprintf("GrowthMode(%d)", int(g))
	}
}

// ParseGrowthMode converts "slow" or "fast" (case insensitive) to a GrowthMode.
func ParseGrowthMode(s string) (GrowthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return GrowthSlow, nil
	case "fast":
		return GrowthFast, nil
	default:
		return 0, fmt.Errorf("%w: unknown growth mode %q", ErrInvalidArgument, s)
	}
}

// Config holds the initialization parameters for a ScalableFilter.
type Config struct {
	// InitialCapacity is the number of items the first tier is sized for.
	// Tier i holds InitialCapacity * Growth^i items.
	InitialCapacity int

	// ErrorRate is the target false positive rate for the first tier.
	// Tier i targets ErrorRate * TighteningRatio^i.
	ErrorRate float64

	Growth GrowthMode

	// TighteningRatio must be in (0, 1) so that the compound false positive
	// rate converges to at most ErrorRate / (1 - TighteningRatio).
	TighteningRatio float64

	// Hash is shared by every tier.
	Hash HashScheme
}

// DefaultConfig returns the default configuration for new scalable filters.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: DefaultCapacity,
		ErrorRate:       DefaultErrorRate,
		Growth:          DefaultGrowth,
		TighteningRatio: DefaultTighteningRatio,
		Hash:            DefaultHashScheme(),
	}
}

// Validate returns ErrInvalidArgument if any parameter is out of range.
func (c Config) Validate() error {
	if err := validate(c.InitialCapacity, c.ErrorRate); err != nil {
		return err
	}
	if c.Growth != GrowthSlow && c.Growth != GrowthFast {
		return fmt.Errorf("%w: growth mode must be slow or fast, got %d", ErrInvalidArgument, int(c.Growth))
	}
	if !validRate(c.TighteningRatio) {
		return fmt.Errorf("%w: tightening ratio must be in (0, 1), got %v", ErrInvalidArgument, c.TighteningRatio)
	}
	return nil
}

// ScalableFilter is a Bloom filter without a capacity ceiling. It owns an
// append-only chain of fixed Filters; the last one is the active tier that
// receives inserts.
type ScalableFilter struct {
	tiers  []*Filter
	config Config
}

// NewScalableFilter validates cfg and creates a filter with exactly one tier
// of cfg.InitialCapacity items at cfg.ErrorRate.
func NewScalableFilter(cfg Config) (*ScalableFilter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sf := &ScalableFilter{config: cfg}
	if err := sf.addTier(cfg.InitialCapacity, cfg.ErrorRate); err != nil {
		return nil, err
	}
	return sf, nil
}

// addTier appends a new empty tier to the chain.
func (sf *ScalableFilter) addTier(capacity int, errorRate float64) error {
	f, err := NewFilter(capacity, errorRate, WithHashScheme(sf.config.Hash))
	if err != nil {
		return err
	}
	sf.tiers = append(sf.tiers, f)
	return nil
}

// Add inserts an item into the active tier, growing the chain first if the
// active tier is full.
//
// Add returns an error only when the chain cannot grow: ErrTooManyTiers once
// MaxTiers tiers exist, or when the next tier's capacity or bit array would
// overflow int. Reaching either takes more items than fit in memory.
func (sf *ScalableFilter) Add(item []byte) error {
	//
	// DESIGN
	// ------
	//
	// A tier is "saturated" once its count reaches its capacity. At that
	// point its false positive rate has reached its target and any further
	// insert would push it beyond. Instead of touching the saturated tier we
	// append exactly one new tier whose capacity is multiplied by the growth
	// factor and whose error rate is multiplied by the tightening ratio.
	//
	// Growth never skips steps: one saturation event creates one tier, and
	// the new tier is always empty when the item lands in it.
	//
	// Duplicates are not filtered out. An item that is already (probably)
	// present still consumes one slot of the active tier, matching the fixed
	// filter's counting rule.
	//
	// Repeated tightening can underflow the error rate to zero for a tiny
	// ratio. The rate is clamped to the smallest positive float64 so the new
	// tier stays constructible.
	//
	active := sf.tiers[len(sf.tiers)-1]

	if active.IsFull() {
		if len(sf.tiers) >= MaxTiers {
			return ErrTooManyTiers
		}

		growth := int(sf.config.Growth)
		if active.Capacity() > math.MaxInt/growth {
			return ErrTooManyTiers
		}

		newCap := active.Capacity() * growth
		newErr := math.Max(active.ErrorRate()*sf.config.TighteningRatio, math.SmallestNonzeroFloat64)
		if err := validateSize(newCap, newErr); err != nil {
			return fmt.Errorf("%w: %v", ErrTooManyTiers, err)
		}
		if err := sf.addTier(newCap, newErr); err != nil {
			return err
		}
		active = sf.tiers[len(sf.tiers)-1]
	}

	return active.Add(item)
}

// Check tests if an item is likely in the set. It iterates through tiers from
// newest to oldest and returns true on the first tier that reports a hit.
func (sf *ScalableFilter) Check(item []byte) bool {
	for i := len(sf.tiers) - 1; i >= 0; i-- {
		if sf.tiers[i].Check(item) {
			return true
		}
	}
	return false
}

// NumTiers returns the number of tiers in the chain.
func (sf *ScalableFilter) NumTiers() int { return len(sf.tiers) }

// Config returns the configuration the filter was created with.
func (sf *ScalableFilter) Config() Config { return sf.config }

// Count returns the total number of successful Add calls across all tiers.
func (sf *ScalableFilter) Count() int {
	n := 0
	for _, t := range sf.tiers {
		n += t.Count()
	}
	return n
}

// Capacity returns the summed capacity of all existing tiers.
func (sf *ScalableFilter) Capacity() int {
	n := 0
	for _, t := range sf.tiers {
		n += t.Capacity()
	}
	return n
}

// NumBits returns the summed bit-array width of all tiers.
func (sf *ScalableFilter) NumBits() int {
	n := 0
	for _, t := range sf.tiers {
		n += t.NumBits()
	}
	return n
}

// ErrorBound returns the asymptotic upper bound on the compound false
// positive rate, ErrorRate / (1 - TighteningRatio).
func (sf *ScalableFilter) ErrorBound() float64 {
	return sf.config.ErrorRate / (1 - sf.config.TighteningRatio)
}

// EstimatedFalsePositiveRate combines the per-tier estimates. An absent item
// is a false positive if any tier reports it, so the compound rate is
// 1 - prod(1 - p_i).
func (sf *ScalableFilter) EstimatedFalsePositiveRate() float64 {
	miss := 1.0
	for _, t := range sf.tiers {
		miss *= 1 - t.EstimatedFalsePositiveRate()
	}
	return 1 - miss
}

// Stats returns one snapshot per tier, oldest first.
func (sf *ScalableFilter) Stats() []Stats {
	out := make([]Stats, len(sf.tiers))
	for i, t := range sf.tiers {
		out[i] = t.Stats()
	}
	return out
}
