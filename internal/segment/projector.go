package segment

import (
	"math"
	"strings"
	"unicode"

	"narralign/internal/lingua"
	"narralign/internal/transcript"
)

const (
	// projectorWindow is how far around the proportional guess the fuzzy
	// search looks before falling back to a full scan.
	projectorWindow = 15
	// projectorMinScore is the weakest local match the projector accepts
	// without widening to a full scan.
	projectorMinScore = 55.0
)

// Projector maps character offsets in (possibly user-edited) subtitle text
// back to audio timestamps by fuzzy-matching the token before each offset
// against the timed words.
type Projector struct {
	matcher lingua.Matcher
}

// NewProjector constructs a Projector. A nil matcher degrades to exact
// token matching.
func NewProjector(matcher lingua.Matcher) *Projector {
	if matcher == nil {
		matcher = lingua.ExactMatcher()
	}
	return &Projector{matcher: matcher}
}

// tokenSpan is one whitespace-delimited token with rune offsets.
type tokenSpan struct {
	text  string
	start int
	end   int
}

// SplitTimes returns one timestamp per split offset: the end time of the
// word spoken just before the split. Offsets are rune offsets into text.
// Returns nil when there are no timed words to project onto.
func (p *Projector) SplitTimes(text string, offsets []int, words []transcript.WordSegment) []float64 {
	if len(words) == 0 || len(offsets) == 0 {
		return nil
	}
	runes := []rune(text)
	tokens := tokenize(runes)

	times := make([]float64, 0, len(offsets))
	for _, offset := range offsets {
		times = append(times, p.splitTime(runes, tokens, offset, words))
	}
	return times
}

func (p *Projector) splitTime(runes []rune, tokens []tokenSpan, offset int, words []transcript.WordSegment) float64 {
	tokenIdx := -1
	for i, tok := range tokens {
		if tok.end > offset {
			break
		}
		tokenIdx = i
	}
	if tokenIdx < 0 {
		// Nothing precedes the offset: interpolate between the first and
		// last word by character position.
		first, last := words[0], words[len(words)-1]
		if len(runes) == 0 {
			return first.Start
		}
		ratio := float64(offset) / float64(len(runes))
		return first.Start + (last.End-first.Start)*ratio
	}

	guess := proportionalGuess(tokenIdx, len(tokens), len(words))
	key := normalizeToken(tokens[tokenIdx].text)
	if key == "" {
		// Pure punctuation token: trust the proportional estimate.
		return words[guess].End
	}

	lo := guess - projectorWindow
	if lo < 0 {
		lo = 0
	}
	hi := guess + projectorWindow
	if hi > len(words)-1 {
		hi = len(words) - 1
	}
	bestIdx, bestScore := p.scanWords(words, lo, hi, key, guess, guess, -1)

	if bestScore < projectorMinScore {
		// Weak local match: the token count may have shifted a lot under
		// editing, so widen to the whole word list.
		bestIdx, _ = p.scanWords(words, 0, len(words)-1, key, guess, bestIdx, bestScore)
	}
	return words[bestIdx].End
}

// scanWords finds the word in [lo, hi] most similar to key, preferring the
// index closest to guess on ties. bestIdx/bestScore seed the comparison.
func (p *Projector) scanWords(words []transcript.WordSegment, lo, hi int, key string, guess, bestIdx int, bestScore float64) (int, float64) {
	for i := lo; i <= hi; i++ {
		wordKey := normalizeToken(words[i].Text)
		if wordKey == "" {
			continue
		}
		score := p.matcher.Ratio(key, wordKey)
		if score > bestScore || (score == bestScore && absInt(i-guess) < absInt(bestIdx-guess)) {
			bestScore = score
			bestIdx = i
		}
	}
	return bestIdx, bestScore
}

func proportionalGuess(tokenIdx, tokenCount, wordCount int) int {
	denom := tokenCount - 1
	if denom < 1 {
		denom = 1
	}
	guess := int(math.Round(float64(tokenIdx) * float64(wordCount-1) / float64(denom)))
	if guess < 0 {
		guess = 0
	}
	if guess > wordCount-1 {
		guess = wordCount - 1
	}
	return guess
}

// tokenize splits runes into whitespace-delimited tokens with offsets.
func tokenize(runes []rune) []tokenSpan {
	var tokens []tokenSpan
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		if i > start {
			tokens = append(tokens, tokenSpan{text: string(runes[start:i]), start: start, end: i})
		}
	}
	return tokens
}

// normalizeToken reduces a token to lowercase letters and digits for fuzzy
// comparison; punctuation and spacing changes from editing drop out.
func normalizeToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
