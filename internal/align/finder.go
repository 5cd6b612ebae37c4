package align

import (
	"strings"

	"narralign/internal/lingua"
	"narralign/internal/script"
	"narralign/internal/transcript"
)

// DefaultSimilarityThreshold is the minimum overall score (0-100) a window
// must reach before a dialogue line is accepted as matched.
const DefaultSimilarityThreshold = 60.0

// Window size bounds relative to the dialogue's word count. Transcribers
// merge and split words, so the matching window may hold fewer or more
// words than the script line.
const (
	minWindowFactor = 0.7
	maxWindowFactor = 1.3
	windowSlack     = 2
)

// AlignedSegment is one dialogue line matched to its span of audio.
// Words carries rebuilt per-word timestamps in original token order;
// segmentation later replaces it when the line is split for display.
type AlignedSegment struct {
	Dialogue  script.DialogueLine
	StartTime float64
	EndTime   float64
	// Confidence is the match score clamped to 0-100.
	Confidence float64
	Words      []transcript.WordSegment
}

// Aligner matches dialogue lines against word-level transcripts.
type Aligner struct {
	threshold float64
	matcher   lingua.Matcher
	speller   lingua.Speller
}

// Options configures an Aligner. Zero values select the defaults; a nil
// Matcher degrades to exact matching and a nil Speller skips digit
// normalization.
type Options struct {
	SimilarityThreshold float64
	Matcher             lingua.Matcher
	Speller             lingua.Speller
}

// New constructs an Aligner. Capability selection happens here, once; the
// per-call paths never check availability again.
func New(opts Options) *Aligner {
	threshold := opts.SimilarityThreshold
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	matcher := opts.Matcher
	if matcher == nil {
		matcher = lingua.ExactMatcher()
	}
	return &Aligner{
		threshold: threshold,
		matcher:   matcher,
		speller:   opts.Speller,
	}
}

// FindSegment searches words from cursor onward for the span matching
// dialogue. It returns the aligned segment and the cursor for the next
// search. When no window reaches the similarity threshold it returns nil
// and the cursor unchanged: the caller must not skip words it never
// matched.
func (a *Aligner) FindSegment(dialogue script.DialogueLine, words []transcript.WordSegment, cursor int) (*AlignedSegment, int) {
	if len(words) == 0 || cursor >= len(words) {
		return nil, cursor
	}

	target := a.normalizeDialogue(dialogue.Text)
	targetWords := strings.Fields(target)
	if len(targetWords) == 0 {
		return nil, cursor
	}

	minWindow := int(float64(len(targetWords)) * minWindowFactor)
	if minWindow < 1 {
		minWindow = 1
	}
	maxWindow := int(float64(len(targetWords))*maxWindowFactor) + windowSlack
	if remaining := len(words) - cursor; maxWindow > remaining {
		maxWindow = remaining
	}

	targetLast := targetWords[len(targetWords)-1]
	targetTail := lastRunes(target, tailLength)

	best := bestMatch{startIdx: cursor, endIdx: cursor}

	for windowSize := minWindow; windowSize <= maxWindow; windowSize++ {
		for startIdx := cursor; startIdx+windowSize <= len(words); startIdx++ {
			endIdx := startIdx + windowSize
			window := words[startIdx:endIdx]
			candidate := normalizeText(transcript.JoinWords(window))

			score := a.matcher.Ratio(target, candidate)

			lastMatch := false
			candWords := strings.Fields(candidate)
			if len(candWords) > 0 {
				candLast := candWords[len(candWords)-1]
				if a.matcher.Ratio(targetLast, candLast) >= lastWordMinRatio {
					score += lastWordBonus
					lastMatch = true
				}
			}

			tailScore := a.matcher.Ratio(targetTail, lastRunes(candidate, tailLength))

			if best.beats(score, tailScore, lastMatch) {
				best = bestMatch{
					score:     score,
					tailScore: tailScore,
					lastMatch: lastMatch,
					words:     window,
					startIdx:  startIdx,
					endIdx:    endIdx,
				}
			}
		}
	}

	if best.score < a.threshold || len(best.words) == 0 {
		return nil, cursor
	}

	confidence := best.score
	if confidence > 100 {
		confidence = 100
	}
	segment := &AlignedSegment{
		Dialogue:   dialogue,
		StartTime:  best.words[0].Start,
		EndTime:    best.words[len(best.words)-1].End,
		Confidence: confidence,
		Words:      a.alignWordsToScript(dialogue.Text, best.words),
	}
	return segment, best.endIdx
}
