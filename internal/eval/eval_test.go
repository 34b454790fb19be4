package eval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbf.lopezb.com/internal/bloom"
)

// oracle is an exact set, used to check the tally logic without any
// probabilistic noise.
type oracle map[string]bool

func (o oracle) Check(item []byte) bool { return o[string(item)] }

func words(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return out
}

func TestConfusion_Record(t *testing.T) {
	var c Confusion
	c.Record(true, true)
	c.Record(true, false)
	c.Record(false, false)
	c.Record(false, false)
	c.Record(false, true)

	assert.Equal(t, Confusion{TruePositive: 1, FalsePositive: 1, TrueNegative: 2, FalseNegative: 1}, c)
	assert.Equal(t, 5, c.Total())
	assert.InDelta(t, 1.0/3.0, c.FalsePositiveRate(), 1e-12)
	assert.Equal(t, "tp=1 fp=1 tn=2 fn=1", c.String())

	assert.Equal(t, 0.0, Confusion{}.FalsePositiveRate())
}

func TestScore_ExactSet(t *testing.T) {
	present := []string{"a", "b", "c"}
	absent := []string{"x", "y"}
	o := oracle{"a": true, "b": true, "y": true}

	c := Score(o, present, absent)
	assert.Equal(t, Confusion{TruePositive: 2, FalseNegative: 1, FalsePositive: 1, TrueNegative: 1}, c)
}

func TestScore_WordInBothListsCountsAsPresent(t *testing.T) {
	c := Score(oracle{"dup": true}, []string{"dup"}, []string{"dup"})
	assert.Equal(t, 2, c.TruePositive)
	assert.Equal(t, 0, c.FalsePositive)
}

func TestEpochs(t *testing.T) {
	present := words("present", 3500)
	absent := words("absent", 3500)

	opts := DefaultEpochOptions()
	opts.Epochs = 5
	opts.Step = 1000

	results, err := Epochs(present, absent, opts)
	require.NoError(t, err)

	// Batches of 4000 and 5000 do not fit in 3500 words.
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, (i+1)*1000, r.Batch)
		assert.Equal(t, r.Batch, r.Filter.Capacity)
		assert.Equal(t, r.Batch, r.Filter.Count)
		assert.Equal(t, 2*r.Batch, r.Confusion.Total())

		// No false negatives, ever.
		assert.Zero(t, r.Confusion.FalseNegative)
		assert.Equal(t, r.Batch, r.Confusion.TruePositive)
		assert.LessOrEqual(t, r.Confusion.FalsePositiveRate(), 2*opts.ErrorRate)
	}
}

func TestEpochs_Errors(t *testing.T) {
	_, err := Epochs(words("p", 10), words("a", 10), DefaultEpochOptions())
	assert.ErrorIs(t, err, ErrNotEnoughWords)

	opts := DefaultEpochOptions()
	opts.Step = 0
	_, err = Epochs(words("p", 10), words("a", 10), opts)
	assert.Error(t, err)

	opts = DefaultEpochOptions()
	opts.Step = 5
	opts.ErrorRate = 2
	_, err = Epochs(words("p", 10), words("a", 10), opts)
	assert.ErrorIs(t, err, bloom.ErrInvalidArgument)
}

func TestScalable(t *testing.T) {
	present := words("present", 2000)
	absent := words("absent", 2000)

	cfg := bloom.DefaultConfig()
	res, err := Scalable(present, absent, cfg)
	require.NoError(t, err)

	assert.Equal(t, 2000, res.Items)
	assert.Zero(t, res.Confusion.FalseNegative)
	assert.Equal(t, 2000, res.Confusion.TruePositive)
	assert.Greater(t, len(res.Tiers), 1)
	assert.InDelta(t, 0.5, res.ErrorBound, 1e-9)
	assert.LessOrEqual(t, res.Confusion.FalsePositiveRate(), res.ErrorBound)

	_, err = Scalable(present, absent, bloom.Config{})
	assert.ErrorIs(t, err, bloom.ErrInvalidArgument)
}

func TestDemo(t *testing.T) {
	lines, stats, err := Demo(len(DemoPresent), 0.05, 1)
	require.NoError(t, err)

	assert.Len(t, lines, demoSample+len(DemoAbsent))
	assert.Equal(t, len(DemoPresent), stats.Count)

	present := make(map[string]bool, len(DemoPresent))
	for _, w := range DemoPresent {
		present[w] = true
	}
	for _, l := range lines {
		if present[l.Word] {
			assert.Equal(t, ProbablyPresent, l.Verdict, "added word %q", l.Word)
		} else {
			assert.NotEqual(t, ProbablyPresent, l.Verdict, "absent word %q", l.Word)
		}
	}

	again, _, err := Demo(len(DemoPresent), 0.05, 1)
	require.NoError(t, err)
	assert.Equal(t, lines, again)
}

func TestDemo_CapacityTooSmall(t *testing.T) {
	_, _, err := Demo(5, 0.05, 1)
	assert.ErrorIs(t, err, bloom.ErrCapacityExceeded)
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "probably present", ProbablyPresent.String())
	assert.Equal(t, "false positive", FalsePositive.String())
	assert.Equal(t, "definitely not present", DefinitelyAbsent.String())
}
