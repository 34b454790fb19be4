package bloom

import "errors"

var (
	// ErrInvalidArgument is returned by constructors for out of range
	// parameters. It is not retryable without changing the inputs.
	ErrInvalidArgument = errors.New("bloom: invalid argument")

	// ErrCapacityExceeded is returned by Filter.Add once the filter holds
	// as many items as it was sized for. Callers that need unbounded growth
	// should use a ScalableFilter.
	ErrCapacityExceeded = errors.New("bloom: filter has reached its capacity")

	// ErrTooManyTiers is returned by ScalableFilter.Add if growing would
	// exceed MaxTiers or overflow the next tier's capacity.
	ErrTooManyTiers = errors.New("bloom: max tiers reached")
)
