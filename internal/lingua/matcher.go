package lingua

import fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

// Matcher scores the similarity of two strings on a 0-100 scale.
type Matcher interface {
	// Ratio returns 100 for identical strings and 0 for strings with
	// nothing in common.
	Ratio(a, b string) float64
}

type fuzzyMatcher struct{}

func (fuzzyMatcher) Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	return float64(fuzzy.Ratio(a, b))
}

// DefaultMatcher returns the fuzzy matcher used in normal operation.
func DefaultMatcher() Matcher { return fuzzyMatcher{} }

type exactMatcher struct{}

func (exactMatcher) Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	return 0
}

// ExactMatcher returns the degraded matcher used when fuzzy matching is
// unavailable: identical strings score 100, everything else scores 0.
func ExactMatcher() Matcher { return exactMatcher{} }
