package srt

import (
	"strings"

	"narralign/internal/align"
	"narralign/internal/segment"
)

// Builder turns aligned dialogue into display-ready subtitle entries:
// long lines split into separate cues at linguistically sound points, cue
// text wrapped for display, and a lead-in applied so cues appear slightly
// before the speech starts.
type Builder struct {
	segmenter *segment.Segmenter
	projector *segment.Projector
	leadIn    float64
}

// NewBuilder constructs a Builder. leadInSeconds shifts each cue start
// earlier by that amount, never before zero and never into the previous
// cue.
func NewBuilder(segmenter *segment.Segmenter, projector *segment.Projector, leadInSeconds float64) *Builder {
	if leadInSeconds < 0 {
		leadInSeconds = 0
	}
	return &Builder{segmenter: segmenter, projector: projector, leadIn: leadInSeconds}
}

type cue struct {
	text  string
	start float64
	end   float64
}

// Build renders the aligned segments as numbered subtitle entries in
// order. Segments are assumed sorted by start time.
func (b *Builder) Build(segments []align.AlignedSegment) []Entry {
	var entries []Entry
	prevEnd := 0.0
	for _, seg := range segments {
		for _, c := range b.splitSegment(seg) {
			start := c.start - b.leadIn
			if start < 0 {
				start = 0
			}
			if start < prevEnd {
				start = prevEnd
			}
			end := c.end
			if end < start {
				end = start
			}
			entries = append(entries, Entry{
				Index: len(entries) + 1,
				Start: start,
				End:   end,
				Text:  b.wrapLines(c.text),
			})
			prevEnd = end
		}
	}
	return entries
}

// splitSegment breaks one aligned segment into cues. Split times are
// projected from the split offsets onto the segment's word timings and
// clamped into the segment's own span.
func (b *Builder) splitSegment(seg align.AlignedSegment) []cue {
	text := seg.Dialogue.Text
	offsets := b.segmenter.SegmentSplitPoints(text)
	if len(offsets) == 0 {
		return []cue{{text: text, start: seg.StartTime, end: seg.EndTime}}
	}

	times := b.projector.SplitTimes(text, offsets, seg.Words)
	pieces := cutRunes(text, offsets)

	cues := make([]cue, 0, len(pieces))
	start := seg.StartTime
	for i, piece := range pieces {
		end := seg.EndTime
		if i < len(times) {
			end = clamp(times[i], start, seg.EndTime)
		}
		if piece != "" {
			cues = append(cues, cue{text: piece, start: start, end: end})
		}
		start = end
	}
	return cues
}

// wrapLines inserts display line breaks into one cue's text.
func (b *Builder) wrapLines(text string) string {
	offsets := b.segmenter.LineSplitPoints(text)
	if len(offsets) == 0 {
		return strings.TrimSpace(text)
	}
	return strings.Join(cutRunes(text, offsets), "\n")
}

// cutRunes slices text at the given rune offsets, trimming the break
// whitespace from each piece.
func cutRunes(text string, offsets []int) []string {
	runes := []rune(text)
	pieces := make([]string, 0, len(offsets)+1)
	prev := 0
	for _, off := range offsets {
		if off < prev {
			off = prev
		}
		if off > len(runes) {
			off = len(runes)
		}
		pieces = append(pieces, strings.TrimSpace(string(runes[prev:off])))
		prev = off
	}
	pieces = append(pieces, strings.TrimSpace(string(runes[prev:])))
	return pieces
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
