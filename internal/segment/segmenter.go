package segment

import (
	"math"
	"unicode"

	"narralign/internal/lingua"
)

// Segmenter finds display-friendly split offsets in subtitle text.
type Segmenter struct {
	params Params
	tagger lingua.Tagger
}

// New constructs a Segmenter. A nil tagger is the degraded mode: Hangul
// break scoring falls back to punctuation cues only.
func New(params Params, tagger lingua.Tagger) *Segmenter {
	return &Segmenter{params: params.withDefaults(), tagger: tagger}
}

// SegmentSplitPoints returns the offsets where text should break into
// separate subtitle cues.
func (s *Segmenter) SegmentSplitPoints(text string) []int {
	return s.findSplitPoints(text, SegmentMode)
}

// LineSplitPoints returns the offsets where one cue's text should wrap
// onto following display lines.
func (s *Segmenter) LineSplitPoints(text string) []int {
	return s.findSplitPoints(text, LineMode)
}

// findSplitPoints walks the text left to right, placing one break per
// iteration until the remainder fits the hard cap. Every returned offset
// is a whitespace position in the original text, except forced truncation
// offsets on whitespace-free input. Termination is guaranteed: every
// iteration consumes at least one rune.
func (s *Segmenter) findSplitPoints(text string, mode Mode) []int {
	soft, hard := s.params.caps(mode)
	if hard <= 0 || soft <= 0 {
		return nil
	}
	full := []rune(text)
	if len(full) <= hard {
		return nil
	}

	scorer := newBreakScorer(mode, s.params.SplitOnConjunctions, s.tagger, text)

	var splits []int
	base := 0
	remaining := full
	for len(remaining) > hard {
		n := len(remaining)

		// Aim for evenly sized pieces rather than greedily filling the
		// cap: ceil(n/hard) pieces are needed at minimum, round(n/soft)
		// pieces read best, and a split always yields at least two.
		numPieces := (n + hard - 1) / hard
		if bySoft := int(math.RoundToEven(float64(n) / float64(soft))); bySoft > numPieces {
			numPieces = bySoft
		}
		if numPieces < 2 {
			numPieces = 2
		}
		target := float64(n) / float64(numPieces)

		minPos := 0
		if numPieces == 2 {
			// The tail piece must itself fit the hard cap.
			if mp := n - hard; mp > 0 {
				minPos = mp
			}
		}

		weight := scorer.consts.distanceWeight
		best, ok := bestBreak(remaining, base, minPos, hard, target, weight, scorer)
		if !ok {
			// Strict mode: allow any whitespace but pull hard toward the
			// target so the oversized piece stays as small as possible.
			best, ok = bestBreak(remaining, base, 0, n, target, weight*strictWeightFactor, scorer)
		}
		if !ok {
			// No whitespace at all: truncate at exactly the hard cap.
			splits = append(splits, base+hard)
			base += hard
			remaining = remaining[hard:]
			continue
		}

		splits = append(splits, base+best)
		next := best
		for next < n && unicode.IsSpace(remaining[next]) {
			next++
		}
		base += next
		remaining = remaining[next:]
	}
	return splits
}

// bestBreak scores every whitespace index of remaining in [minPos, limit]
// and returns the highest-scoring one. base converts remaining-relative
// offsets to absolute offsets for the scorer. Returns false when the range
// holds no whitespace.
func bestBreak(remaining []rune, base, minPos, limit int, target, weight float64, scorer *breakScorer) (int, bool) {
	n := len(remaining)
	bestIdx := -1
	bestScore := math.Inf(-1)

	for i := minPos; i <= limit && i < n; i++ {
		if !unicode.IsSpace(remaining[i]) {
			continue
		}

		d := (float64(i) - target) / target
		score := -(d * d) * weight
		score += scorer.score(base + i)
		if i < orphanChars || n-i-1 < orphanChars {
			score += scorer.consts.orphanPenalty
		}

		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0, false
	}
	return bestIdx, true
}
