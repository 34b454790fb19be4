package eval

import (
	"errors"
	"fmt"

	"sbf.lopezb.com/internal/bloom"
)

// ErrNotEnoughWords is returned when the word lists cannot fill even the
// first batch.
var ErrNotEnoughWords = errors.New("eval: not enough words for the first batch")

// EpochOptions controls Epochs.
type EpochOptions struct {
	// Epochs is the number of batches. Batch i holds i*Step items.
	Epochs int
	Step   int

	// ErrorRate is the target rate of every fixed filter.
	ErrorRate float64

	Hash bloom.HashScheme
}

// DefaultEpochOptions returns twelve batches of 1000, 2000, ... words at a
// 5% target error rate.
func DefaultEpochOptions() EpochOptions {
	return EpochOptions{
		Epochs:    12,
		Step:      1000,
		ErrorRate: 0.05,
		Hash:      bloom.DefaultHashScheme(),
	}
}

// EpochResult is the outcome of one batch.
type EpochResult struct {
	Batch     int
	Confusion Confusion
	Filter    bloom.Stats
}

// Epochs builds one fixed filter per batch, sized exactly for the batch, adds
// present[:batch] and scores it against present[:batch] and absent[:batch].
//
// Batches that would need more words than either list holds are skipped, so
// the result may be shorter than opts.Epochs.
func Epochs(present, absent []string, opts EpochOptions) ([]EpochResult, error) {
	if opts.Epochs <= 0 || opts.Step <= 0 {
		return nil, fmt.Errorf("eval: epochs and step must be positive, got %d and %d", opts.Epochs, opts.Step)
	}

	var results []EpochResult
	for i := 1; i <= opts.Epochs; i++ {
		batch := i * opts.Step
		if batch > len(present) || batch > len(absent) {
			break
		}

		f, err := bloom.NewFilter(batch, opts.ErrorRate, bloom.WithHashScheme(opts.Hash))
		if err != nil {
			return nil, err
		}

		in := present[:batch]
		for _, w := range in {
			if err := f.Add([]byte(w)); err != nil {
				return nil, fmt.Errorf("eval: batch %d: %w", batch, err)
			}
		}

		results = append(results, EpochResult{
			Batch:     batch,
			Confusion: Score(f, in, absent[:batch]),
			Filter:    f.Stats(),
		})
	}

	if len(results) == 0 {
		return nil, ErrNotEnoughWords
	}
	return results, nil
}

// ScalableResult is the outcome of Scalable.
type ScalableResult struct {
	Items        int
	Confusion    Confusion
	Tiers        []bloom.Stats
	EstimatedFPR float64
	ErrorBound   float64
}

// Scalable adds every present word to a new scalable filter and scores it
// against present and absent.
func Scalable(present, absent []string, cfg bloom.Config) (ScalableResult, error) {
	sf, err := bloom.NewScalableFilter(cfg)
	if err != nil {
		return ScalableResult{}, err
	}

	for _, w := range present {
		if err := sf.Add([]byte(w)); err != nil {
			return ScalableResult{}, err
		}
	}

	return ScalableResult{
		Items:        sf.Count(),
		Confusion:    Score(sf, present, absent),
		Tiers:        sf.Stats(),
		EstimatedFPR: sf.EstimatedFalsePositiveRate(),
		ErrorBound:   sf.ErrorBound(),
	}, nil
}
