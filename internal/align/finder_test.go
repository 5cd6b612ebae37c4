package align

import (
	"testing"

	"narralign/internal/lingua"
	"narralign/internal/script"
	"narralign/internal/transcript"
)

// evenWords builds a word sequence timed at equal intervals from start.
func evenWords(start, step float64, texts ...string) []transcript.WordSegment {
	words := make([]transcript.WordSegment, len(texts))
	for i, text := range texts {
		words[i] = transcript.WordSegment{
			Text:  text,
			Start: start + float64(i)*step,
			End:   start + float64(i+1)*step,
		}
	}
	return words
}

func TestFindSegmentExactMatch(t *testing.T) {
	aligner := New(Options{Matcher: lingua.DefaultMatcher()})
	dialogue := script.DialogueLine{Index: 0, Speaker: "A", Text: "The quick brown fox jumps"}
	words := evenWords(0, 0.5, "The", "quick", "brown", "fox", "jumps")

	segment, next := aligner.FindSegment(dialogue, words, 0)
	if segment == nil {
		t.Fatal("expected a match")
	}
	if segment.StartTime != 0.0 || segment.EndTime != 2.5 {
		t.Errorf("segment spans %.2f-%.2f, want 0.00-2.50", segment.StartTime, segment.EndTime)
	}
	if segment.Confidence != 100.0 {
		t.Errorf("Confidence = %v, want 100.0", segment.Confidence)
	}
	if len(segment.Words) != 5 {
		t.Errorf("got %d aligned words, want 5", len(segment.Words))
	}
	if next != 5 {
		t.Errorf("next cursor = %d, want 5", next)
	}
}

func TestFindSegmentExcludesTrailingExtra(t *testing.T) {
	aligner := New(Options{Matcher: lingua.DefaultMatcher()})
	dialogue := script.DialogueLine{Index: 0, Speaker: "A", Text: "I will go there"}
	words := evenWords(0, 0.4, "I", "will", "go", "there", "okay")

	segment, next := aligner.FindSegment(dialogue, words, 0)
	if segment == nil {
		t.Fatal("expected a match")
	}
	if segment.EndTime != words[3].End {
		t.Errorf("EndTime = %v, want end of %q (%v)", segment.EndTime, "there", words[3].End)
	}
	for _, w := range segment.Words {
		if w.Text == "okay" {
			t.Error("trailing transcript extra leaked into aligned words")
		}
	}
	if next != 4 {
		t.Errorf("next cursor = %d, want 4", next)
	}
}

func TestFindSegmentRejectBelowThreshold(t *testing.T) {
	aligner := New(Options{SimilarityThreshold: 100, Matcher: lingua.DefaultMatcher()})
	dialogue := script.DialogueLine{Index: 0, Speaker: "A", Text: "completely unrelated sentence here"}
	words := evenWords(0, 0.5, "totally", "different", "words", "spoken")

	segment, next := aligner.FindSegment(dialogue, words, 2)
	if segment != nil {
		t.Fatalf("expected no match, got %+v", segment)
	}
	if next != 2 {
		t.Errorf("cursor moved to %d on rejection, want unchanged 2", next)
	}
}

func TestFindSegmentEmptyTranscript(t *testing.T) {
	aligner := New(Options{Matcher: lingua.DefaultMatcher()})
	dialogue := script.DialogueLine{Index: 0, Speaker: "A", Text: "hello"}

	segment, next := aligner.FindSegment(dialogue, nil, 0)
	if segment != nil || next != 0 {
		t.Errorf("FindSegment(nil words) = %v, %d; want nil, 0", segment, next)
	}
}

func TestFindSegmentRespectsCursor(t *testing.T) {
	aligner := New(Options{Matcher: lingua.DefaultMatcher()})
	// The same phrase occurs twice; searching from cursor 3 must find the
	// second occurrence, not the first.
	words := evenWords(0, 0.5, "good", "morning", "everyone", "well", "good", "morning", "everyone")
	dialogue := script.DialogueLine{Index: 1, Speaker: "A", Text: "Good morning everyone"}

	segment, next := aligner.FindSegment(dialogue, words, 3)
	if segment == nil {
		t.Fatal("expected a match")
	}
	if segment.StartTime < words[4].Start {
		t.Errorf("match started at %v, before the cursor boundary %v", segment.StartTime, words[4].Start)
	}
	if next != 7 {
		t.Errorf("next cursor = %d, want 7", next)
	}
}

func TestFindSegmentDegradedExactMatcher(t *testing.T) {
	// Without a fuzzy matcher the aligner still accepts verbatim matches.
	aligner := New(Options{})
	dialogue := script.DialogueLine{Index: 0, Speaker: "A", Text: "hello world"}
	words := evenWords(0, 0.5, "hello", "world")

	segment, _ := aligner.FindSegment(dialogue, words, 0)
	if segment == nil {
		t.Fatal("exact matcher should accept a verbatim match")
	}
	if segment.Confidence != 100 {
		t.Errorf("Confidence = %v, want 100", segment.Confidence)
	}
}

func TestBestMatchTieBreaks(t *testing.T) {
	tests := []struct {
		name      string
		best      bestMatch
		score     float64
		tailScore float64
		lastMatch bool
		want      bool
	}{
		{"clearly higher score", bestMatch{score: 80, tailScore: 90}, 82, 10, false, true},
		{"clearly lower score", bestMatch{score: 80, tailScore: 10}, 78.5, 100, true, false},
		{"similar score higher tail", bestMatch{score: 80, tailScore: 50}, 80.5, 60, false, true},
		{"similar score lower tail", bestMatch{score: 80, tailScore: 90}, 80.5, 80, true, false},
		{"similar tails gains last word", bestMatch{score: 80, tailScore: 90}, 79.5, 91, true, true},
		{"similar tails raw score decides", bestMatch{score: 80, tailScore: 90, lastMatch: true}, 80.5, 91, true, true},
		{"similar tails raw score loses", bestMatch{score: 80, tailScore: 90, lastMatch: true}, 79.5, 91, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.best.beats(tt.score, tt.tailScore, tt.lastMatch); got != tt.want {
				t.Errorf("beats(%v, %v, %v) = %v, want %v", tt.score, tt.tailScore, tt.lastMatch, got, tt.want)
			}
		})
	}
}
