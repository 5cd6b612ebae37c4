package align

import "narralign/internal/transcript"

// Tie-break thresholds. These values are empirically tuned; changing any
// of them changes matching behavior.
const (
	// scoreTolerance is the band within which two overall scores are
	// treated as equivalent and tail comparison kicks in.
	scoreTolerance = 1.0
	// tailTolerance is the equivalence band for tail scores.
	tailTolerance = 2.0
	// lastWordBonus is added to the overall score when the final words of
	// dialogue and window agree.
	lastWordBonus = 2.0
	// lastWordMinRatio is the similarity the final words must reach to
	// count as agreeing.
	lastWordMinRatio = 85.0
	// tailLength is how many trailing runes the tail similarity compares.
	tailLength = 15
)

// bestMatch accumulates the strongest candidate window seen so far.
type bestMatch struct {
	score     float64
	tailScore float64
	lastMatch bool
	words     []transcript.WordSegment
	startIdx  int
	endIdx    int
}

// beats reports whether a candidate with the given scores should replace
// the current best. Rules, in order: a clearly higher overall score wins;
// within the overall tolerance a clearly higher tail score wins (this is
// what keeps a window from swallowing the start of the next sentence);
// within both tolerances, gaining the last-word bonus wins, then the raw
// overall score decides.
func (b *bestMatch) beats(score, tailScore float64, lastMatch bool) bool {
	if score > b.score+scoreTolerance {
		return true
	}
	if score <= b.score-scoreTolerance {
		return false
	}
	if tailScore > b.tailScore+tailTolerance {
		return true
	}
	if tailScore <= b.tailScore-tailTolerance {
		return false
	}
	if lastMatch && !b.lastMatch {
		return true
	}
	return score > b.score
}
