package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type payloadWord struct {
	Word  string  `json:"word"`
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type payloadSegment struct {
	Text  string        `json:"text"`
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Words []payloadWord `json:"words"`
}

type payload struct {
	Language string           `json:"language"`
	Segments []payloadSegment `json:"segments"`
	Words    []payloadWord    `json:"words"`
}

// LoadJSON reads a word-level transcription payload. Both the segmented
// whisper layout ({"segments": [{"words": [...]}]}) and a flat word list
// ({"words": [...]}) are accepted; word text may appear under "word" or
// "text". Word text is normalized to NFC.
func LoadJSON(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}

	var words []WordSegment
	appendWord := func(w payloadWord) {
		text := w.Text
		if text == "" {
			text = w.Word
		}
		text = strings.TrimSpace(norm.NFC.String(text))
		if text == "" {
			return
		}
		end := w.End
		if end < w.Start {
			end = w.Start
		}
		words = append(words, WordSegment{Text: text, Start: w.Start, End: end})
	}
	for _, seg := range p.Segments {
		for _, w := range seg.Words {
			appendWord(w)
		}
	}
	for _, w := range p.Words {
		appendWord(w)
	}

	return &Transcript{
		FilePath: path,
		Language: strings.TrimSpace(p.Language),
		Words:    words,
		FullText: JoinWords(words),
	}, nil
}
