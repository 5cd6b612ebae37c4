package segment

import (
	"strings"
	"testing"
	"unicode"
)

func lineParams(soft, hard int) Params {
	return Params{LineSoftCap: soft, LineHardCap: hard, MaxLines: 2, SplitOnConjunctions: true}
}

// cutAt slices text at the returned offsets the way a subtitle builder
// would, trimming the break whitespace.
func cutAt(text string, offsets []int) []string {
	runes := []rune(text)
	var pieces []string
	prev := 0
	for _, off := range offsets {
		pieces = append(pieces, strings.TrimSpace(string(runes[prev:off])))
		prev = off
	}
	pieces = append(pieces, strings.TrimSpace(string(runes[prev:])))
	return pieces
}

func TestFindSplitPointsShortTextUnsplit(t *testing.T) {
	s := New(lineParams(20, 25), nil)
	if got := s.LineSplitPoints("short enough"); got != nil {
		t.Errorf("LineSplitPoints(short) = %v, want nil", got)
	}
}

func TestFindSplitPointsMidpointComma(t *testing.T) {
	s := New(lineParams(20, 25), nil)
	// 50 runes; the comma sits just before the midpoint whitespace.
	text := "He waited at the station, but the train left early"

	got := s.LineSplitPoints(text)
	if len(got) != 1 {
		t.Fatalf("got %d offsets (%v), want exactly 1", len(got), got)
	}
	if got[0] != 25 {
		t.Errorf("split offset = %d, want 25 (after the comma)", got[0])
	}
	if []rune(text)[got[0]] != ' ' {
		t.Errorf("offset %d is not whitespace", got[0])
	}
}

func TestFindSplitPointsPiecesFitHardCap(t *testing.T) {
	s := New(lineParams(20, 25), nil)
	text := strings.Repeat("seven words in a simple row here ", 6)
	text = strings.TrimSpace(text)

	offsets := s.LineSplitPoints(text)
	if len(offsets) == 0 {
		t.Fatal("expected at least one split")
	}
	runes := []rune(text)
	for i, off := range offsets {
		if off <= 0 || off >= len(runes) {
			t.Fatalf("offset %d out of range", off)
		}
		if !unicode.IsSpace(runes[off]) {
			t.Errorf("offset %d is not whitespace", off)
		}
		if i > 0 && off <= offsets[i-1] {
			t.Errorf("offsets not increasing: %v", offsets)
		}
	}
	for _, piece := range cutAt(text, offsets) {
		if len([]rune(piece)) > 25 {
			t.Errorf("piece %q has %d runes, over hard cap 25", piece, len([]rune(piece)))
		}
	}
}

func TestFindSplitPointsForcedTruncation(t *testing.T) {
	s := New(lineParams(20, 25), nil)
	text := strings.Repeat("a", 60)

	offsets := s.LineSplitPoints(text)
	want := []int{25, 50}
	if len(offsets) != len(want) {
		t.Fatalf("offsets = %v, want %v", offsets, want)
	}
	for i := range want {
		if offsets[i] != want[i] {
			t.Fatalf("offsets = %v, want %v", offsets, want)
		}
	}
}

func TestFindSplitPointsStrictModeRescue(t *testing.T) {
	s := New(lineParams(20, 25), nil)
	// The only whitespace sits past the hard cap; the strict retry must
	// still find it rather than truncating mid-word.
	text := strings.Repeat("x", 30) + " " + strings.Repeat("y", 10)

	offsets := s.LineSplitPoints(text)
	if len(offsets) != 1 || offsets[0] != 30 {
		t.Errorf("offsets = %v, want [30]", offsets)
	}
}

func TestSegmentModeCapsDerivation(t *testing.T) {
	p := Params{LineSoftCap: 16, LineHardCap: 21, MaxLines: 2}
	soft, hard := p.caps(SegmentMode)
	if soft != 24 {
		t.Errorf("segment soft cap = %d, want 24", soft)
	}
	if hard != 37 {
		t.Errorf("segment hard cap = %d, want 37", hard)
	}
	soft, hard = p.caps(LineMode)
	if soft != 16 || hard != 21 {
		t.Errorf("line caps = %d/%d, want 16/21", soft, hard)
	}
}

func TestFindSplitPointsTerminatesOnLongText(t *testing.T) {
	s := New(lineParams(20, 25), nil)
	text := strings.TrimSpace(strings.Repeat("alpha beta gamma delta ", 200))

	offsets := s.LineSplitPoints(text)
	for _, piece := range cutAt(text, offsets) {
		if n := len([]rune(piece)); n > 25 {
			t.Fatalf("piece %q has %d runes, over hard cap", piece, n)
		}
	}
}
