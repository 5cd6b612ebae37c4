package transcript

import "strings"

// WordSegment is a single transcribed word with absolute timestamps in
// seconds. End is never earlier than Start.
type WordSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is the full word-level transcription of one speaker's audio
// file, already voice-activity-trimmed upstream.
type Transcript struct {
	FilePath string        `json:"file_path"`
	Language string        `json:"language"`
	Words    []WordSegment `json:"words"`
	FullText string        `json:"full_text"`
}

// JoinWords reconstructs the running text from word segments.
func JoinWords(words []WordSegment) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if t := strings.TrimSpace(w.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
