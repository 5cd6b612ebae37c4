package align

import (
	"narralign/internal/script"
	"narralign/internal/transcript"
)

// AlignSpeaker matches one speaker's dialogue lines against that speaker's
// transcript, in order, with a single forward-only cursor. The cursor only
// advances past words a line actually claimed, so accepted segments never
// overlap in transcript-word space. Unmatched lines are skipped without
// advancing the cursor.
func (a *Aligner) AlignSpeaker(lines []script.DialogueLine, words []transcript.WordSegment) []AlignedSegment {
	var segments []AlignedSegment
	cursor := 0
	for _, line := range lines {
		segment, next := a.FindSegment(line, words, cursor)
		if segment != nil {
			segments = append(segments, *segment)
			cursor = next
		}
	}
	return segments
}

// AlignAll aligns every dialogue line against its speaker's transcript and
// merges the per-speaker results back into original script order. Lines
// whose speaker has no transcript are skipped entirely; lines that fail to
// match are omitted. The result is a sparse view of the script, keyed by
// DialogueLine.Index.
func (a *Aligner) AlignAll(lines []script.DialogueLine, transcripts map[string]*transcript.Transcript) []AlignedSegment {
	bySpeaker := make(map[string][]script.DialogueLine)
	for _, line := range lines {
		bySpeaker[line.Speaker] = append(bySpeaker[line.Speaker], line)
	}

	byIndex := make(map[int]AlignedSegment)
	for speaker, speakerLines := range bySpeaker {
		tr, ok := transcripts[speaker]
		if !ok || tr == nil {
			continue
		}
		for _, segment := range a.AlignSpeaker(speakerLines, tr.Words) {
			byIndex[segment.Dialogue.Index] = segment
		}
	}

	result := make([]AlignedSegment, 0, len(byIndex))
	for _, line := range lines {
		if segment, ok := byIndex[line.Index]; ok {
			result = append(result, segment)
		}
	}
	return result
}
