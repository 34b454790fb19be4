package eval

import (
	"slices"

	"sbf.lopezb.com/internal/bloom"
	"sbf.lopezb.com/internal/wordlist"
)

// DemoPresent and DemoAbsent are a small fixed word set for a quick
// walkthrough of filter answers.
var (
	DemoPresent = []string{
		"abound", "abounds", "abundance", "abundant", "accessable",
		"bloom", "blossom", "bolster", "bonny", "bonus", "bonuses",
		"coherent", "cohesive", "colorful", "comely", "comfort",
		"gems", "generosity", "generous", "generously", "genial",
	}

	DemoAbsent = []string{
		"bluff", "cheater", "hate", "war", "humanity",
		"racism", "hurt", "nuke", "gloomy", "facebook",
		"geeksforgeeks", "twitter",
	}
)

// demoSample is how many added words are mixed into the test set.
const demoSample = 10

// Verdict classifies a single Check answer.
type Verdict int

const (
	DefinitelyAbsent Verdict = iota
	ProbablyPresent
	FalsePositive
)

func (v Verdict) String() string {
	switch v {
	case ProbablyPresent:
		return "probably present"
	case FalsePositive:
		return "false positive"
	default:
		return "definitely not present"
	}
}

// DemoLine is one tested word and its verdict.
type DemoLine struct {
	Word    string
	Verdict Verdict
}

// Demo adds every DemoPresent word to a filter of the given capacity, then
// tests a shuffled mix of ten added words and all DemoAbsent words. The
// seed makes the order reproducible.
func Demo(capacity int, errorRate float64, seed uint64) ([]DemoLine, bloom.Stats, error) {
	f, err := bloom.NewFilter(capacity, errorRate)
	if err != nil {
		return nil, bloom.Stats{}, err
	}

	present := slices.Clone(DemoPresent)
	absent := slices.Clone(DemoAbsent)
	for _, w := range present {
		if err := f.Add([]byte(w)); err != nil {
			return nil, bloom.Stats{}, err
		}
	}

	wordlist.Shuffle(present, seed)
	wordlist.Shuffle(absent, seed)

	n := min(demoSample, len(present))
	test := append(slices.Clone(present[:n]), absent...)
	wordlist.Shuffle(test, seed)

	lines := make([]DemoLine, 0, len(test))
	for _, w := range test {
		v := DefinitelyAbsent
		if f.Check([]byte(w)) {
			v = ProbablyPresent
			if slices.Contains(DemoAbsent, w) {
				v = FalsePositive
			}
		}
		lines = append(lines, DemoLine{Word: w, Verdict: v})
	}

	return lines, f.Stats(), nil
}
