// Package eval measures how Bloom filters behave against known ground truth.
//
// It replaces an interactive script: items are split into a half that is
// added and a half that never is, and every Check result is tallied into a
// confusion matrix. The package depends only on the public filter API.
package eval

import "fmt"

// Membership is the query side of a Bloom filter. Both bloom.Filter and
// bloom.ScalableFilter satisfy it.
type Membership interface {
	Check(item []byte) bool
}

// Confusion tallies Check results against ground truth.
type Confusion struct {
	TruePositive  int
	FalsePositive int
	TrueNegative  int
	FalseNegative int
}

// Record adds one observation. predicted is what Check returned, actual is
// whether the item was really added.
func (c *Confusion) Record(predicted, actual bool) {
	switch {
	case predicted && actual:
		c.TruePositive++
	case predicted && !actual:
		c.FalsePositive++
	case !predicted && !actual:
		c.TrueNegative++
	default:
		c.FalseNegative++
	}
}

// Total returns the number of recorded observations.
func (c Confusion) Total() int {
	return c.TruePositive + c.FalsePositive + c.TrueNegative + c.FalseNegative
}

// FalsePositiveRate returns FP / (FP + TN), or 0 when no absent item was
// queried.
func (c Confusion) FalsePositiveRate() float64 {
	negatives := c.FalsePositive + c.TrueNegative
	if negatives == 0 {
		return 0
	}
	return float64(c.FalsePositive) / float64(negatives)
}

func (c Confusion) String() string {
	return fmt.Sprintf("tp=%d fp=%d tn=%d fn=%d", c.TruePositive, c.FalsePositive, c.TrueNegative, c.FalseNegative)
}

// Score queries m for every item in present and absent. Ground truth is
// membership in present: a word listed in both slices counts as present.
func Score(m Membership, present, absent []string) Confusion {
	truth := make(map[string]struct{}, len(present))
	for _, w := range present {
		truth[w] = struct{}{}
	}

	var c Confusion
	for _, list := range [][]string{present, absent} {
		for _, w := range list {
			_, actual := truth[w]
			c.Record(m.Check([]byte(w)), actual)
		}
	}
	return c
}
