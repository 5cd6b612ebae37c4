package align

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"narralign/internal/transcript"
)

// floorDuration is the minimum length of an interpolated word. Words the
// transcript never heard still need a visible span for editing.
const floorDuration = 0.05

// alignWordsToScript re-times the script's own tokens against the winning
// transcript window. A sequence diff between normalized token lists yields
// equal/replace/delete/insert ranges; equal pairs copy timestamps 1:1,
// replacements distribute the window span by character length, deletions
// interpolate inside the surrounding gap, and inserted transcript words
// (wording the speaker added) are dropped. The result holds exactly one
// entry per script token, in original order.
func (a *Aligner) alignWordsToScript(scriptText string, window []transcript.WordSegment) []transcript.WordSegment {
	if len(window) == 0 {
		return nil
	}

	var raws, norms []string
	for _, tok := range strings.Fields(scriptText) {
		if n := normalizeText(tok); n != "" {
			raws = append(raws, tok)
			norms = append(norms, n)
		}
	}
	if len(raws) == 0 {
		return append([]transcript.WordSegment(nil), window...)
	}

	windowNorms := make([]string, len(window))
	for i, w := range window {
		windowNorms[i] = normalizeText(w.Text)
	}

	result := make([]transcript.WordSegment, 0, len(raws))
	for _, op := range difflib.NewMatcher(norms, windowNorms).GetOpCodes() {
		switch op.Tag {
		case 'e':
			for k := 0; k < op.I2-op.I1; k++ {
				w := window[op.J1+k]
				result = append(result, transcript.WordSegment{Text: raws[op.I1+k], Start: w.Start, End: w.End})
			}
		case 'r':
			if op.I2-op.I1 == op.J2-op.J1 {
				for k := 0; k < op.I2-op.I1; k++ {
					w := window[op.J1+k]
					result = append(result, transcript.WordSegment{Text: raws[op.I1+k], Start: w.Start, End: w.End})
				}
			} else {
				span := window[op.J1:op.J2]
				result = append(result, distributeSpan(raws[op.I1:op.I2], span[0].Start, span[len(span)-1].End)...)
			}
		case 'd':
			anchorStart := window[0].Start
			if len(result) > 0 {
				anchorStart = result[len(result)-1].End
			}
			anchorEnd := window[len(window)-1].End
			if op.J1 < len(window) {
				anchorEnd = window[op.J1].Start
			}
			result = append(result, interpolateGap(raws[op.I1:op.I2], anchorStart, anchorEnd)...)
		case 'i':
			// Transcript words with no script counterpart produce no output.
		}
	}
	return result
}

// distributeSpan spreads tokens across [start, end] proportionally to
// character length.
func distributeSpan(tokens []string, start, end float64) []transcript.WordSegment {
	totalChars := 0
	for _, t := range tokens {
		totalChars += len([]rune(t))
	}
	span := end - start
	if span < 0 {
		span = 0
	}

	out := make([]transcript.WordSegment, 0, len(tokens))
	current := start
	for _, t := range tokens {
		share := 1.0 / float64(len(tokens))
		if totalChars > 0 {
			share = float64(len([]rune(t))) / float64(totalChars)
		}
		duration := span * share
		out = append(out, transcript.WordSegment{Text: t, Start: current, End: current + duration})
		current += duration
	}
	return out
}

// interpolateGap is distributeSpan with a floor duration per word, used for
// script tokens the transcript has no counterpart for. The floor means the
// last interpolated word may poke slightly past the anchor; callers
// tolerate that at gap boundaries.
func interpolateGap(tokens []string, start, end float64) []transcript.WordSegment {
	totalChars := 0
	for _, t := range tokens {
		totalChars += len([]rune(t))
	}
	span := end - start
	if span < 0 {
		span = 0
	}

	out := make([]transcript.WordSegment, 0, len(tokens))
	current := start
	for _, t := range tokens {
		share := 1.0 / float64(len(tokens))
		if totalChars > 0 {
			share = float64(len([]rune(t))) / float64(totalChars)
		}
		duration := span * share
		if duration < floorDuration {
			duration = floorDuration
		}
		out = append(out, transcript.WordSegment{Text: t, Start: current, End: current + duration})
		current += duration
	}
	return out
}
